package docsite

import (
	"context"
	"fmt"

	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/pipeline"
)

// Renderer turns one markdown page into an HTML fragment.
// Create with NewRenderer. A Renderer is safe for concurrent use: the
// processor list is immutable and every Render gets its own context.
type Renderer struct {
	engine      *pipeline.Engine
	lineNumbers bool
	toc         *TOC
}

// NewRenderer creates a Renderer running every built-in processor.
// Returns error if an option is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		engine: pipeline.NewEngine(pipeline.Default()),
		toc:    DefaultTOC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.toc.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Render runs the extension pipeline over input.
// Malformed custom syntax degrades to literal text and never fails the
// render. A panicking processor is reported as ErrProcessorFailed.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrProcessorFailed, rec)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	fm, body, err := ParseFrontMatter(input.Markdown)
	if err != nil {
		return nil, err
	}

	rc := pipeline.NewRenderContext(r.renderConfig(input.Config))
	rc.Snippets = input.Snippets

	htmlContent, err := r.engine.Render(ctx, body, rc)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	entries := rc.TOC()
	res := &Result{
		HTML:        htmlContent,
		Title:       fm.Title,
		Description: fm.Description,
		FrontMatter: fm,
		Headings:    make([]Heading, 0, len(entries)),
	}
	for _, e := range entries {
		res.Headings = append(res.Headings, Heading{Level: e.Level, ID: e.ID, Text: e.Text})
		if res.Title == "" && e.Level == 1 {
			res.Title = e.Text
		}
	}
	if r.toc != nil {
		res.TOC = pipeline.GenerateTOC(entries, pipeline.TOCOptions{
			Title:    r.toc.Title,
			MinDepth: r.toc.MinDepth,
			MaxDepth: r.toc.MaxDepth,
			Numbered: r.toc.Numbered,
		})
	}
	for _, w := range rc.Warnings() {
		if input.Path != "" {
			w = input.Path + ": " + w
		}
		res.Warnings = append(res.Warnings, w)
	}

	return res, nil
}

// renderConfig returns the config for one render. The caller's value is
// shared by concurrent renders, so the line-number override goes to a copy.
func (r *Renderer) renderConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if r.lineNumbers && !cfg.Markdown.LineNumbers {
		c := *cfg
		c.Markdown.LineNumbers = true
		cfg = &c
	}
	return cfg
}
