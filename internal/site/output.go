package site

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docsite/internal/assets"
	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/fileutil"
	"github.com/alnah/go-docsite/internal/layout"
	"github.com/alnah/go-docsite/internal/nav"
)

// Files written under the output directory's assets folder.
const (
	AssetsDir    = "assets"
	StyleFile    = "docsite.css"
	HighlightCSS = "highlight.css"
	ScriptFile   = "docsite.js"
)

// DefaultTheme is the highlight theme used when markdown.theme is empty.
const DefaultTheme = "github"

// writeAssets writes the stylesheet, the syntax theme and the client script.
func (b *Builder) writeAssets() error {
	style, err := b.loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteAssets, err)
	}
	script, err := b.loader.LoadScript(assets.DefaultScriptName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteAssets, err)
	}
	name := b.cfg.Markdown.Theme
	if name == "" {
		name = DefaultTheme
	}
	theme, err := assets.HighlightCSS(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteAssets, err)
	}

	dir := filepath.Join(b.outDir, AssetsDir)
	files := []struct {
		name    string
		content string
	}{
		{StyleFile, style},
		{HighlightCSS, theme},
		{ScriptFile, script},
	}
	for _, f := range files {
		if err := fileutil.WriteFile(filepath.Join(dir, f.name), []byte(f.content)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteAssets, err)
		}
	}
	return nil
}

// copyStatic copies every non-markdown file of the source tree, such as
// images and downloads, to the same place in the output.
func (b *Builder) copyStatic() error {
	absOut, _ := filepath.Abs(b.outDir)
	return filepath.WalkDir(b.srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(p); abs == absOut || (p != b.srcDir && skipDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(d.Name()) || isConfigFile(d.Name()) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(b.srcDir, p)
		if err != nil {
			return err
		}
		return fileutil.CopyFile(p, filepath.Join(b.outDir, rel))
	})
}

func isConfigFile(name string) bool {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		if name == config.DefaultConfigName+ext {
			return true
		}
	}
	return false
}

// writeIndexes writes the sitemap and the search index in reading order.
func (b *Builder) writeIndexes(pages []*page, tree *nav.Tree) error {
	byURL := make(map[string]*page, len(pages))
	for _, p := range pages {
		if p.ok() && p.outPath != "" {
			byURL[p.src.URL] = p
		}
	}

	var urls []string
	var docs []searchDoc
	for _, np := range tree.Pages() {
		p, ok := byURL[np.URL]
		if !ok {
			continue
		}
		urls = append(urls, np.URL)
		if b.cfg.Search.Enabled && !b.searchExcluded(p) {
			docs = append(docs, searchEntry(p))
		}
	}

	if b.cfg.BaseURL != "" {
		if err := writeSitemap(b.outDir, b.cfg.BaseURL, urls); err != nil {
			return err
		}
	}
	if b.cfg.Search.Enabled {
		return writeSearchIndex(b.outDir, docs)
	}
	return nil
}

func searchEntry(p *page) searchDoc {
	doc := searchDoc{
		URL:   p.src.URL,
		Title: p.title,
		Text:  plainText(p.res.HTML),
	}
	for _, h := range p.res.Headings {
		if h.Level >= 2 {
			doc.Headings = append(doc.Headings, h.Text)
		}
	}
	return doc
}

func (b *Builder) cardsEnabled() bool {
	return b.cfg.SocialCards.Enabled && b.opts.Cards != nil
}

// renderCards writes one social card per page and returns how many were
// written and the first failure. Failures are also attached to their page
// as warnings.
func (b *Builder) renderCards(ctx context.Context, pages []*page) (int, error) {
	if !b.cardsEnabled() {
		return 0, nil
	}

	var jobs []cardJob
	for i, p := range pages {
		if !p.ok() || p.outPath == "" {
			continue
		}
		content, err := b.layout.RenderCard(ctx, &layout.Card{
			Lang:        b.cfg.Lang,
			SiteTitle:   b.cfg.Title,
			Title:       p.title,
			Description: p.res.Description,
			Logo:        b.cardLogo(),
			Color:       b.cfg.Branding.PrimaryColor,
		})
		if err != nil {
			p.err = err
			continue
		}
		jobs = append(jobs, cardJob{
			page:    i,
			html:    content,
			outPath: filepath.Join(b.outDir, filepath.FromSlash(cardPath(p.src.URL))),
		})
	}

	written := 0
	var first error
	for i, err := range runCardBatch(ctx, b.opts.Cards, jobs) {
		if err == nil {
			written++
			continue
		}
		if first == nil {
			first = err
		}
		p := pages[jobs[i].page]
		p.extra = append(p.extra, fmt.Sprintf("%s: social card: %v", p.src.Rel, err))
	}
	return written, first
}

// cardLogo returns the logo as a URL the headless browser can load from
// the temporary card file.
func (b *Builder) cardLogo() string {
	logo := b.cfg.Branding.Logo
	if logo == "" || strings.Contains(logo, "://") || strings.HasPrefix(logo, "data:") {
		return logo
	}
	p, err := fileutil.JoinWithin(b.srcDir, logo)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	return "file://" + filepath.ToSlash(abs)
}
