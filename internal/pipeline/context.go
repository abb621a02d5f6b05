package pipeline

import (
	"fmt"

	"github.com/alnah/go-docsite/internal/config"
)

// TOCEntry is a heading collected while injecting anchors.
type TOCEntry struct {
	Level int
	ID    string
	Text  string
}

// SnippetSource resolves code-import paths to file content.
// The pipeline never touches the filesystem itself.
type SnippetSource interface {
	ReadSnippet(path string) (string, error)
}

// fragmentRenderer renders a markdown fragment through the whole pipeline
// using the given (child) context.
type fragmentRenderer interface {
	renderFragment(markdown string, rc *RenderContext) string
}

// RenderContext carries per-document state between the preprocess and
// postprocess phases. A new one is created for every render and is never
// reused across documents.
type RenderContext struct {
	Config   *config.Config
	Snippets SnippetSource

	fences   map[int]*FenceDescriptor
	toc      []TOCEntry
	slugs    map[string]int
	slots    []string
	slotTOC  map[int][]TOCEntry // headings of nested renders, per slot
	nested   []TOCEntry         // nested headings not yet given a slot
	warnings []string
	values   map[string]any

	renderer fragmentRenderer
	depth    int
}

// NewRenderContext creates an empty context for one document.
// A nil cfg is replaced with the default configuration.
func NewRenderContext(cfg *config.Config) *RenderContext {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &RenderContext{
		Config: cfg,
		fences: make(map[int]*FenceDescriptor),
		slugs:  make(map[string]int),
		values: make(map[string]any),
	}
}

// child returns a fresh context for a nested render (tabs, code-group panels).
// Fence numbering restarts; warnings bubble up to the parent.
func (rc *RenderContext) child() *RenderContext {
	c := NewRenderContext(rc.Config)
	c.Snippets = rc.Snippets
	c.renderer = rc.renderer
	c.depth = rc.depth + 1
	c.slugs = rc.slugs
	return c
}

// Set stores an arbitrary value for processors outside this package.
func (rc *RenderContext) Set(key string, v any) {
	rc.values[key] = v
}

// Get returns a value stored with Set.
func (rc *RenderContext) Get(key string) (any, bool) {
	v, ok := rc.values[key]
	return v, ok
}

// Fence returns the descriptor recorded for the fence with the given index,
// creating it if needed.
func (rc *RenderContext) Fence(index int) *FenceDescriptor {
	fd, ok := rc.fences[index]
	if !ok {
		fd = newFenceDescriptor()
		rc.fences[index] = fd
	}
	return fd
}

// lookupFence returns the descriptor for index without creating it.
func (rc *RenderContext) lookupFence(index int) (*FenceDescriptor, bool) {
	fd, ok := rc.fences[index]
	return fd, ok
}

// TOC returns the headings collected during postprocessing, in document order.
func (rc *RenderContext) TOC() []TOCEntry {
	return rc.toc
}

func (rc *RenderContext) addTOCEntry(e TOCEntry) {
	rc.toc = append(rc.toc, e)
}

// Warnings returns non-fatal authoring problems found during the render.
func (rc *RenderContext) Warnings() []string {
	return rc.warnings
}

func (rc *RenderContext) warnf(format string, args ...any) {
	rc.warnings = append(rc.warnings, fmt.Sprintf(format, args...))
}

// storeSlot keeps rendered HTML aside and returns its slot number. The
// headings of the nested renders that produced html are attached to it.
func (rc *RenderContext) storeSlot(html string) int {
	rc.slots = append(rc.slots, html)
	k := len(rc.slots) - 1
	if len(rc.nested) > 0 {
		if rc.slotTOC == nil {
			rc.slotTOC = make(map[int][]TOCEntry)
		}
		rc.slotTOC[k] = rc.nested
		rc.nested = nil
	}
	return k
}

// uniqueSlug returns slug, suffixed with -1, -2... when already used.
func (rc *RenderContext) uniqueSlug(slug string) string {
	n, seen := rc.slugs[slug]
	rc.slugs[slug] = n + 1
	if !seen {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}

// renderNested renders markdown in a child context and merges its warnings
// and headings.
// setup runs on the child before rendering.
func (rc *RenderContext) renderNested(markdown string, setup ...func(*RenderContext)) string {
	if rc.renderer == nil {
		panic("pipeline: nested render without an engine")
	}
	c := rc.child()
	for _, fn := range setup {
		fn(c)
	}
	out := rc.renderer.renderFragment(markdown, c)
	rc.warnings = append(rc.warnings, c.warnings...)
	rc.nested = append(rc.nested, c.toc...)
	return out
}
