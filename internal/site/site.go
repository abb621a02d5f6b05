// Package site builds a static documentation site from a source directory.
//
// A build discovers markdown pages, renders them concurrently, assembles
// the navigation from the rendered titles, lays every page out with the
// page template and writes the result together with the stylesheets,
// client script, static files, sitemap and search index.
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	docsite "github.com/alnah/go-docsite"
	"github.com/alnah/go-docsite/internal/assets"
	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/layout"
)

// Sentinel errors for site builds.
var (
	ErrSourceDir    = errors.New("source directory not found")
	ErrNoPages      = errors.New("no markdown pages found")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePage    = errors.New("failed to write page")
	ErrWriteAssets  = errors.New("failed to write site assets")
	ErrCardInit     = errors.New("failed to initialize card renderer")
	ErrUnsafeClean  = errors.New("refusing to clean output directory")
)

// Options configures a Builder.
type Options struct {
	Config     *config.Config
	BaseDir    string   // Relative srcDir, outDir and asset paths resolve against it ("" = cwd)
	LiveReload string   // Websocket endpoint announced to pages, empty in production builds
	Cards      CardPool // Social card renderers (nil skips cards)
	Clean      bool     // Remove the output directory before building
}

// Builder renders a whole site. A Builder can run many builds, one at a
// time; the dev server reuses it on every change.
type Builder struct {
	cfg      *config.Config
	opts     Options
	srcDir   string
	outDir   string
	loader   assets.AssetLoader
	layout   *layout.Renderer
	renderer *docsite.Renderer
	workers  int
}

// New validates the configuration and prepares templates and renderers.
func New(opts Options) (*Builder, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var assetPath string
	if cfg.Assets.BasePath != "" {
		assetPath = resolvePath(opts.BaseDir, cfg.Assets.BasePath)
	}
	loader, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, err
	}

	lay, err := layout.New(loader)
	if err != nil {
		return nil, err
	}

	// Line numbers come from cfg, passed with every page.
	renderer, err := docsite.NewRenderer(docsite.WithTOC(tocSettings(cfg.TOC)))
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:      cfg,
		opts:     opts,
		srcDir:   resolvePath(opts.BaseDir, cfg.Build.SrcDir),
		outDir:   resolvePath(opts.BaseDir, cfg.Build.OutDir),
		loader:   loader,
		layout:   lay,
		renderer: renderer,
		workers:  ResolveWorkers(cfg.Build.Workers),
	}, nil
}

// tocSettings maps the config outline to renderer settings, filling unset
// depths from the defaults. A disabled outline maps to nil.
func tocSettings(c config.TOCConfig) *docsite.TOC {
	if !c.Enabled {
		return nil
	}
	toc := docsite.DefaultTOC()
	toc.Title = c.Title
	toc.Numbered = c.Numbered
	if c.MinDepth != 0 {
		toc.MinDepth = c.MinDepth
	}
	if c.MaxDepth != 0 {
		toc.MaxDepth = c.MaxDepth
	}
	if toc.MinDepth > toc.MaxDepth {
		toc.MaxDepth = toc.MinDepth
	}
	return toc
}

// resolvePath joins a relative p onto base.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// SourceDir returns the resolved source directory.
func (b *Builder) SourceDir() string {
	return b.srcDir
}

// OutputDir returns the resolved output directory.
func (b *Builder) OutputDir() string {
	return b.outDir
}

// PageResult is the outcome of one page.
type PageResult struct {
	Source   string // Source path relative to the source dir
	Output   string // Written file
	Warnings []string
	Err      error
	Duration time.Duration
}

// Result is the outcome of a build.
type Result struct {
	ID       string // Unique, sortable build identifier
	Pages    []PageResult
	Skipped  []string // Sources shadowed by another page with the same URL
	Cards    int      // Social cards written
	CardErr  error    // First social card failure, also reported as a page warning
	Duration time.Duration
}

// Summary holds the count of succeeded and failed pages.
type Summary struct {
	Succeeded int
	Failed    int
}

// Summary tallies succeeded and failed pages.
func (r *Result) Summary() Summary {
	var s Summary
	for _, p := range r.Pages {
		if p.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// Warnings returns the warnings of every page in build order.
func (r *Result) Warnings() []string {
	var out []string
	for _, p := range r.Pages {
		out = append(out, p.Warnings...)
	}
	return out
}

// Build renders the site. Failures of single pages are reported in the
// result; the returned error is reserved for problems that stop the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(b.srcDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceDir, b.srcDir)
	}

	if b.opts.Clean {
		if err := b.clean(); err != nil {
			return nil, err
		}
	}

	sources, skipped, err := discoverPages(b.srcDir, b.outDir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, b.srcDir)
	}

	res := &Result{ID: ulid.Make().String(), Skipped: skipped}

	pages := b.renderPages(ctx, sources)
	tree := b.buildNav(pages)
	b.writePages(ctx, pages, tree)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.writeAssets(); err != nil {
		return nil, err
	}
	if err := b.copyStatic(); err != nil {
		return nil, err
	}
	if err := b.writeIndexes(pages, tree); err != nil {
		return nil, err
	}
	res.Cards, res.CardErr = b.renderCards(ctx, pages)

	res.Pages = make([]PageResult, len(pages))
	for i, p := range pages {
		res.Pages[i] = PageResult{
			Source:   p.src.Rel,
			Output:   p.outPath,
			Warnings: p.warnings(),
			Err:      p.err,
			Duration: p.dur,
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}

// clean removes the output directory unless it holds the sources or the
// project itself.
func (b *Builder) clean() error {
	absOut, err := filepath.Abs(b.outDir)
	if err != nil {
		return err
	}
	absSrc, _ := filepath.Abs(b.srcDir)
	absBase, _ := filepath.Abs(b.opts.BaseDir)

	if rel, err := filepath.Rel(absOut, absSrc); err == nil && !filepath.IsAbs(rel) && !startsWithDotDot(rel) {
		return fmt.Errorf("%w: %s contains the source directory", ErrUnsafeClean, b.outDir)
	}
	if absOut == absBase || absOut == filepath.Dir(absOut) {
		return fmt.Errorf("%w: %s", ErrUnsafeClean, b.outDir)
	}
	return os.RemoveAll(absOut)
}

func startsWithDotDot(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
