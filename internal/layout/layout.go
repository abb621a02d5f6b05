// Package layout renders full HTML pages and social cards from the
// page and card templates.
package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-docsite/internal/assets"
)

// Sentinel errors for layout rendering.
var (
	ErrPageRender = errors.New("page template rendering failed")
	ErrCardRender = errors.New("card template rendering failed")
)

// NavLink is one entry of the sidebar tree. Section entries group
// children and have no URL of their own.
type NavLink struct {
	Title    string
	URL      string
	Active   bool
	Section  bool
	Children []NavLink
}

// PageLink points to a neighboring page for the pager.
type PageLink struct {
	Title string
	URL   string
}

// Page holds everything the page template needs.
// URLs are relative to the page, so Root is the prefix that reaches the
// site root ("" for top-level pages, "../" one directory down).
type Page struct {
	Lang           string
	Root           string
	SiteTitle      string
	Title          string
	Description    string
	CanonicalURL   string
	CardImage      string
	Favicon        string
	Logo           string
	PrimaryColor   string
	SearchExcluded bool
	LiveReload     string

	Nav     []NavLink
	Content template.HTML
	TOC     template.HTML
	Prev    *PageLink
	Next    *PageLink

	FooterText  string
	LastUpdated string
}

// Card holds the data for a 1200x630 social card.
type Card struct {
	Lang        string
	SiteTitle   string
	Title       string
	Description string
	Logo        string
	Color       string
}

// Renderer executes the page and card templates.
// It is safe for concurrent use.
type Renderer struct {
	page *template.Template
	card *template.Template
}

// New parses the page and card templates from loader.
func New(loader assets.AssetLoader) (*Renderer, error) {
	page, err := parse(loader, assets.PageTemplateName)
	if err != nil {
		return nil, err
	}
	card, err := parse(loader, assets.CardTemplateName)
	if err != nil {
		return nil, err
	}
	return &Renderer{page: page, card: card}, nil
}

func parse(loader assets.AssetLoader, name string) (*template.Template, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s template: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return tmpl, nil
}

// RenderPage executes the page template.
func (r *Renderer) RenderPage(ctx context.Context, p *Page) ([]byte, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

// RenderCard executes the card template.
func (r *Renderer) RenderCard(ctx context.Context, c *Card) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if c.Color == "" {
		c.Color = "#0b7285"
	}

	var buf bytes.Buffer
	if err := r.card.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCardRender, err)
	}
	return buf.String(), nil
}

// RootPrefix returns the relative prefix from a page at rel (slash
// separated, relative to the site root) back to the root.
func RootPrefix(rel string) string {
	depth := strings.Count(strings.TrimPrefix(rel, "/"), "/")
	return strings.Repeat("../", depth)
}

// Asset returns ref as seen from a page with the given root prefix.
// Absolute URLs and root-relative paths are kept as written.
func Asset(root, ref string) string {
	if ref == "" || strings.Contains(ref, "://") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	if strings.HasPrefix(ref, "/") {
		return ref
	}
	return root + ref
}
