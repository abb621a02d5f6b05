// Package nav builds the sidebar tree and the reading order of a site.
//
// Pages are grouped by directory. Within a directory, entries listed in
// nav.order come first in the listed order, then entries with a front
// matter order, then the directory index, then the rest by file name.
package nav

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-docsite/internal/layout"
)

// Page is one rendered page as seen by the navigation.
type Page struct {
	Rel   string // source path relative to the source dir, slash separated
	URL   string // output path relative to the site root
	Title string
	Order int // front matter order, 0 when unset
}

// Node is one entry of the tree: a page or a directory section.
type Node struct {
	Title    string
	Page     *Page
	Children []*Node
}

// Section reports whether the node groups other entries.
func (n *Node) Section() bool {
	return n.Page == nil
}

// Tree is the navigation of a whole site.
type Tree struct {
	Roots []*Node
	pages []*Page
	index map[string]int
}

type dirEntry struct {
	name  string
	rel   string
	pages []*Page
	dirs  map[string]*dirEntry
}

var titleCaser = cases.Title(language.English)

// Build groups pages into a tree. order lists source paths (files or
// directories, relative to the source dir) that come first.
func Build(pages []Page, order []string) *Tree {
	rank := make(map[string]int, len(order))
	for i, p := range order {
		p = strings.Trim(path.Clean(strings.TrimPrefix(p, "./")), "/")
		if _, dup := rank[p]; !dup {
			rank[p] = i
		}
	}

	root := &dirEntry{dirs: make(map[string]*dirEntry)}
	for i := range pages {
		p := &pages[i]
		d := root
		parts := strings.Split(p.Rel, "/")
		for _, part := range parts[:len(parts)-1] {
			child, ok := d.dirs[part]
			if !ok {
				child = &dirEntry{name: part, rel: path.Join(d.rel, part), dirs: make(map[string]*dirEntry)}
				d.dirs[part] = child
			}
			d = child
		}
		d.pages = append(d.pages, p)
	}

	t := &Tree{index: make(map[string]int)}
	t.Roots = t.buildDir(root, rank)
	return t
}

type sortItem struct {
	name  string
	rel   string
	order int
	index bool
	page  *Page
	dir   *dirEntry
}

func (t *Tree) buildDir(d *dirEntry, rank map[string]int) []*Node {
	items := make([]sortItem, 0, len(d.pages)+len(d.dirs))
	for _, p := range d.pages {
		items = append(items, sortItem{
			name:  path.Base(p.Rel),
			rel:   p.Rel,
			order: p.Order,
			index: isIndex(p.Rel),
			page:  p,
		})
	}
	for _, sub := range d.dirs {
		items = append(items, sortItem{name: sub.name, rel: sub.rel, order: dirOrder(sub), dir: sub})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra, aRanked := rank[a.rel]
		rb, bRanked := rank[b.rel]
		if aRanked != bRanked {
			return aRanked
		}
		if aRanked && ra != rb {
			return ra < rb
		}
		if (a.order != 0) != (b.order != 0) {
			return a.order != 0
		}
		if a.order != b.order {
			return a.order < b.order
		}
		if a.index != b.index {
			return a.index
		}
		return a.name < b.name
	})

	nodes := make([]*Node, 0, len(items))
	for _, it := range items {
		if it.page != nil {
			t.index[it.page.URL] = len(t.pages)
			t.pages = append(t.pages, it.page)
			nodes = append(nodes, &Node{Title: it.page.Title, Page: it.page})
			continue
		}
		nodes = append(nodes, &Node{
			Title:    dirTitle(it.dir),
			Children: t.buildDir(it.dir, rank),
		})
	}
	return nodes
}

// dirOrder lets a directory index page position its whole section.
func dirOrder(d *dirEntry) int {
	for _, p := range d.pages {
		if isIndex(p.Rel) {
			return p.Order
		}
	}
	return 0
}

// dirTitle is the title of the directory index, or the humanized name.
func dirTitle(d *dirEntry) string {
	for _, p := range d.pages {
		if isIndex(p.Rel) && p.Title != "" {
			return p.Title
		}
	}
	return Humanize(d.name)
}

func isIndex(rel string) bool {
	base := strings.ToLower(path.Base(rel))
	return base == "index.md" || base == "readme.md"
}

// Humanize turns a file or directory name into a title:
// "getting-started.md" becomes "Getting Started".
func Humanize(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.TrimLeft(name, "0123456789")
	name = strings.Trim(strings.NewReplacer("-", " ", "_", " ").Replace(name), " ")
	if name == "" {
		return "Untitled"
	}
	return titleCaser.String(name)
}

// Pages returns all pages in reading order.
func (t *Tree) Pages() []*Page {
	return t.pages
}

// Neighbors returns the pages before and after url in reading order.
func (t *Tree) Neighbors(url string) (prev, next *Page) {
	i, ok := t.index[url]
	if !ok {
		return nil, nil
	}
	if i > 0 {
		prev = t.pages[i-1]
	}
	if i+1 < len(t.pages) {
		next = t.pages[i+1]
	}
	return prev, next
}

// Links renders the tree for the page at current, with URLs relative to it.
func (t *Tree) Links(current string) []layout.NavLink {
	return links(t.Roots, current, layout.RootPrefix(current))
}

func links(nodes []*Node, current, root string) []layout.NavLink {
	out := make([]layout.NavLink, 0, len(nodes))
	for _, n := range nodes {
		l := layout.NavLink{Title: n.Title, Section: n.Section()}
		if n.Page != nil {
			l.URL = root + n.Page.URL
			l.Active = n.Page.URL == current
		}
		if len(n.Children) > 0 {
			l.Children = links(n.Children, current, root)
		}
		out = append(out, l)
	}
	return out
}
