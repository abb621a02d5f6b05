package docsite

import (
	"fmt"

	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/pipeline"
)

// Config is the site configuration handed to every processor.
type Config = config.Config

// DefaultConfig returns the configuration used when Input.Config is nil.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// SnippetSource resolves `<<< @/path` code imports to file content.
// Paths are slash separated and relative to the site source directory.
type SnippetSource = pipeline.SnippetSource

// Input contains the parameters of one page render.
type Input struct {
	Markdown string        // Markdown content, optionally with front matter (required)
	Path     string        // Source path, used in warnings (optional)
	Snippets SnippetSource // Code import source (optional, nil disables imports)
	Config   *Config       // Active site configuration (optional, nil uses DefaultConfig)
}

// FrontMatter is the optional YAML block at the top of a page.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Search      *bool  `yaml:"search"`
	Order       int    `yaml:"order"`
}

// SearchExcluded reports whether the page opted out of search.
func (f FrontMatter) SearchExcluded() bool {
	return f.Search != nil && !*f.Search
}

// Heading is a heading found in the rendered page.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Result is a rendered page fragment with its metadata.
type Result struct {
	HTML        string      // Rendered body fragment
	TOC         string      // "On this page" outline, empty when disabled or no heading matches
	Title       string      // Front matter title, else the first h1
	Description string      // Front matter description
	FrontMatter FrontMatter // Parsed front matter
	Headings    []Heading   // Every heading in document order
	Warnings    []string    // Non-fatal findings, prefixed with Input.Path when set
}

// TOC configures the per-page outline.
type TOC struct {
	Title    string
	MinDepth int // Minimum heading level (default: 2, skips H1)
	MaxDepth int // Maximum heading level (default: 3)
	Numbered bool
}

// Validate checks that heading depths are in range.
// Returns nil if t is nil (nil means no outline).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MinDepth < 1 || t.MinDepth > 6 {
		return fmt.Errorf("%w: minDepth %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MinDepth)
	}
	if t.MaxDepth < 1 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: maxDepth %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	if t.MinDepth > t.MaxDepth {
		return fmt.Errorf("%w: minDepth %d greater than maxDepth %d", ErrInvalidTOCDepth, t.MinDepth, t.MaxDepth)
	}
	return nil
}

// DefaultTOC returns the "On this page" outline settings: h2 and h3.
func DefaultTOC() *TOC {
	return &TOC{
		Title:    pipeline.DefaultTOCOptions.Title,
		MinDepth: pipeline.DefaultTOCOptions.MinDepth,
		MaxDepth: pipeline.DefaultTOCOptions.MaxDepth,
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLineNumbers enables line numbers on every code block, in addition to
// markdown.lineNumbers of Input.Config. Fences can still opt out with
// :no-line-numbers.
func WithLineNumbers(enabled bool) Option {
	return func(r *Renderer) {
		r.lineNumbers = enabled
	}
}

// WithTOC sets the outline settings. A nil toc disables the outline.
func WithTOC(toc *TOC) Option {
	return func(r *Renderer) {
		r.toc = toc
	}
}
