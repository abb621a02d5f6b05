package pipeline

import (
	"context"
	"html"
)

// Engine runs a Pipeline around a markdown converter.
// It is safe for concurrent use.
type Engine struct {
	pipeline  *Pipeline
	converter *GoldmarkConverter
}

// NewEngine creates an engine for p. A nil p uses Default().
func NewEngine(p *Pipeline) *Engine {
	if p == nil {
		p = Default()
	}
	return &Engine{pipeline: p, converter: NewGoldmarkConverter()}
}

// Pipeline returns the processor list the engine runs.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Render runs preprocess, markdown conversion and postprocess for one
// document. Processor panics are not recovered.
func (e *Engine) Render(ctx context.Context, markdown string, rc *RenderContext) (string, error) {
	if rc.renderer == nil {
		rc.renderer = e
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pre := e.pipeline.RunPreprocessors(markdown, rc)
	out, err := e.converter.ToHTML(ctx, pre)
	if err != nil {
		return "", err
	}
	return e.pipeline.RunPostprocessors(out, rc), nil
}

// renderFragment implements fragmentRenderer for nested container bodies.
// A conversion failure degrades to the escaped source.
func (e *Engine) renderFragment(markdown string, rc *RenderContext) string {
	pre := e.pipeline.RunPreprocessors(markdown, rc)
	out, err := e.converter.convert(pre)
	if err != nil {
		rc.warnf("nested block could not be converted: %v", err)
		return "<pre>" + html.EscapeString(markdown) + "</pre>"
	}
	return e.pipeline.RunPostprocessors(out, rc)
}
