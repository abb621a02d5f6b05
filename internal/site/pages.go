package site

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	docsite "github.com/alnah/go-docsite"
	"github.com/alnah/go-docsite/internal/dateutil"
	"github.com/alnah/go-docsite/internal/fileutil"
	"github.com/alnah/go-docsite/internal/layout"
	"github.com/alnah/go-docsite/internal/nav"
)

// page carries one source through the build.
type page struct {
	src     sourcePage
	res     *docsite.Result
	title   string
	modTime time.Time
	outPath string
	extra   []string // build warnings besides the renderer's
	err     error
	dur     time.Duration
}

func (p *page) ok() bool {
	return p.err == nil && p.res != nil
}

func (p *page) warnings() []string {
	var out []string
	if p.res != nil {
		out = append(out, p.res.Warnings...)
	}
	return append(out, p.extra...)
}

// renderPages reads and renders every source concurrently.
func (b *Builder) renderPages(ctx context.Context, sources []sourcePage) []*page {
	pages := make([]*page, len(sources))
	snippets := dirSnippets{root: b.srcDir}

	runBatch(b.workers, len(sources), func(i int) {
		start := time.Now()
		p := &page{src: sources[i]}
		pages[i] = p
		defer func() { p.dur = time.Since(start) }()

		if err := ctx.Err(); err != nil {
			p.err = err
			return
		}

		info, err := os.Stat(p.src.Path)
		if err != nil {
			p.err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
			return
		}
		content, err := os.ReadFile(p.src.Path) // #nosec G304 -- discovered path
		if err != nil {
			p.err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
			return
		}
		p.modTime = info.ModTime()

		res, err := b.renderer.Render(ctx, docsite.Input{
			Markdown: string(content),
			Path:     p.src.Rel,
			Snippets: snippets,
			Config:   b.cfg,
		})
		if err != nil {
			p.err = err
			return
		}
		p.res = res
		p.title = b.pageTitle(p)
	})
	return pages
}

// pageTitle falls back from the rendered title to the site title for the
// home page and to the file name elsewhere.
func (b *Builder) pageTitle(p *page) string {
	if p.res.Title != "" {
		return p.res.Title
	}
	if p.src.URL == "index.html" {
		return b.cfg.Title
	}
	if path.Base(p.src.URL) == "index.html" {
		return nav.Humanize(path.Base(path.Dir(p.src.Rel)))
	}
	return nav.Humanize(path.Base(p.src.Rel))
}

// buildNav builds the tree from the pages that rendered.
func (b *Builder) buildNav(pages []*page) *nav.Tree {
	entries := make([]nav.Page, 0, len(pages))
	for _, p := range pages {
		if !p.ok() {
			continue
		}
		entries = append(entries, nav.Page{
			Rel:   p.src.Rel,
			URL:   p.src.URL,
			Title: p.title,
			Order: p.res.FrontMatter.Order,
		})
	}
	return nav.Build(entries, b.cfg.Nav.Order)
}

// writePages lays out and writes every rendered page.
func (b *Builder) writePages(ctx context.Context, pages []*page, tree *nav.Tree) {
	runBatch(b.workers, len(pages), func(i int) {
		p := pages[i]
		if !p.ok() {
			return
		}
		start := time.Now()
		defer func() { p.dur += time.Since(start) }()

		data := b.pageData(p, tree)
		out, err := b.layout.RenderPage(ctx, data)
		if err != nil {
			p.err = err
			return
		}

		outPath := filepath.Join(b.outDir, filepath.FromSlash(p.src.URL))
		if err := fileutil.WriteFile(outPath, out); err != nil {
			p.err = fmt.Errorf("%w: %v", ErrWritePage, err)
			return
		}
		p.outPath = outPath
	})
}

// pageData assembles the template data for one page.
func (b *Builder) pageData(p *page, tree *nav.Tree) *layout.Page {
	cfg := b.cfg
	url := p.src.URL
	root := layout.RootPrefix(url)

	data := &layout.Page{
		Lang:           cfg.Lang,
		Root:           root,
		SiteTitle:      cfg.Title,
		Title:          p.title,
		Description:    p.res.Description,
		Favicon:        layout.Asset(root, cfg.Branding.Favicon),
		Logo:           layout.Asset(root, cfg.Branding.Logo),
		PrimaryColor:   cfg.Branding.PrimaryColor,
		SearchExcluded: b.searchExcluded(p),
		LiveReload:     b.opts.LiveReload,
		Nav:            tree.Links(url),
		Content:        template.HTML(p.res.HTML), // #nosec G203 -- rendered by the pipeline
		TOC:            template.HTML(p.res.TOC),  // #nosec G203 -- rendered by the pipeline
		FooterText:     cfg.Footer.Text,
	}
	if data.Description == "" {
		data.Description = cfg.Description
	}
	if cfg.BaseURL != "" {
		data.CanonicalURL = absoluteURL(cfg.BaseURL, url)
	}
	if b.cardsEnabled() {
		card := cardPath(url)
		if cfg.BaseURL != "" {
			data.CardImage = absoluteURL(cfg.BaseURL, card)
		} else {
			data.CardImage = root + card
		}
	}

	prev, next := tree.Neighbors(url)
	if prev != nil {
		data.Prev = &layout.PageLink{Title: prev.Title, URL: root + prev.URL}
	}
	if next != nil {
		data.Next = &layout.PageLink{Title: next.Title, URL: root + next.URL}
	}

	if cfg.Footer.LastUpdated != "" && !p.modTime.IsZero() {
		if s, err := dateutil.Format(p.modTime, cfg.Footer.LastUpdated); err == nil {
			data.LastUpdated = s
		}
	}
	return data
}

// searchExcluded reports whether the page stays out of the search index.
func (b *Builder) searchExcluded(p *page) bool {
	if !b.cfg.Search.Enabled {
		return false
	}
	return p.res.FrontMatter.SearchExcluded() || excluded(p.src.Rel, b.cfg.Search.Exclude)
}

// cardPath is the image path of a page card: guide/install.html becomes
// cards/guide/install.png.
func cardPath(url string) string {
	return "cards/" + strings.TrimSuffix(url, ".html") + ".png"
}
