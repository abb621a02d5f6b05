package pipeline

import "sort"

// DefaultPriority is used by With when no explicit priority is given.
const DefaultPriority = 100

// Processor is a named pipeline stage. A processor takes part in the
// preprocess phase, the postprocess phase, or both, by also implementing
// Preprocessor and/or Postprocessor. A processor implementing neither is
// a no-op.
type Processor interface {
	Name() string
}

// Preprocessor transforms markdown before it reaches goldmark.
type Preprocessor interface {
	Processor
	Preprocess(content string, rc *RenderContext) string
}

// Postprocessor transforms the HTML produced by goldmark.
type Postprocessor interface {
	Processor
	Postprocess(html string, rc *RenderContext) string
}

// Registration pairs a processor with its priority. Lower runs first.
type Registration struct {
	Priority  int
	Processor Processor
}

// At registers p with an explicit priority.
func At(priority int, p Processor) Registration {
	return Registration{Priority: priority, Processor: p}
}

// With registers p at DefaultPriority.
func With(p Processor) Registration {
	return At(DefaultPriority, p)
}

// Pipeline is an immutable, priority-ordered list of processors.
// It is safe for concurrent use; all per-document state lives in the
// RenderContext passed to each run.
type Pipeline struct {
	regs []Registration
	pre  []Preprocessor
	post []Postprocessor
}

// New builds a pipeline from registrations. Equal priorities keep their
// registration order. Nil processors are ignored.
func New(regs ...Registration) *Pipeline {
	sorted := make([]Registration, 0, len(regs))
	for _, r := range regs {
		if r.Processor != nil {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	p := &Pipeline{regs: sorted}
	for _, r := range sorted {
		if pre, ok := r.Processor.(Preprocessor); ok {
			p.pre = append(p.pre, pre)
		}
		if post, ok := r.Processor.(Postprocessor); ok {
			p.post = append(p.post, post)
		}
	}
	return p
}

// Processors returns the registrations in execution order.
func (p *Pipeline) Processors() []Registration {
	out := make([]Registration, len(p.regs))
	copy(out, p.regs)
	return out
}

// RunPreprocessors applies every preprocessor in order.
// Processor panics are not recovered here.
func (p *Pipeline) RunPreprocessors(content string, rc *RenderContext) string {
	for _, proc := range p.pre {
		content = proc.Preprocess(content, rc)
	}
	return content
}

// RunPostprocessors applies every postprocessor in order.
func (p *Pipeline) RunPostprocessors(html string, rc *RenderContext) string {
	for _, proc := range p.post {
		html = proc.Postprocess(html, rc)
	}
	return html
}
