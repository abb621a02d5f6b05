package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docsite/internal/layout"
)

// Notes:
// - Page URLs mirror the source tree with .md replaced by .html; the site
//   builder owns that mapping, tests spell it out.

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func sitePages() []Page {
	return []Page{
		{Rel: "guide/usage.md", URL: "guide/usage.html", Title: "Usage"},
		{Rel: "index.md", URL: "index.html", Title: "Home"},
		{Rel: "guide/install.md", URL: "guide/install.html", Title: "Install"},
		{Rel: "guide/index.md", URL: "guide/index.html", Title: "Guide"},
		{Rel: "reference/api.md", URL: "reference/api.html", Title: "API"},
		{Rel: "changelog.md", URL: "changelog.html", Title: "Changelog"},
	}
}

func urls(pages []*Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.URL
	}
	return out
}

// ---------------------------------------------------------------------------
// TestBuild
// ---------------------------------------------------------------------------

func TestBuild_ReadingOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pages []Page
		order []string
		want  []string
	}{
		{
			name:  "index first then names, directories sorted with files",
			pages: sitePages(),
			want: []string{
				"index.html",
				"changelog.html",
				"guide/index.html",
				"guide/install.html",
				"guide/usage.html",
				"reference/api.html",
			},
		},
		{
			name:  "nav order wins",
			pages: sitePages(),
			order: []string{"reference", "./guide/usage.md", "guide"},
			want: []string{
				"reference/api.html",
				"guide/usage.html",
				"guide/index.html",
				"guide/install.html",
				"index.html",
				"changelog.html",
			},
		},
		{
			name: "front matter order before unordered pages",
			pages: []Page{
				{Rel: "a.md", URL: "a.html", Title: "A"},
				{Rel: "b.md", URL: "b.html", Title: "B", Order: 2},
				{Rel: "c.md", URL: "c.html", Title: "C", Order: 1},
			},
			want: []string{"c.html", "b.html", "a.html"},
		},
		{
			name: "directory index order positions the section",
			pages: []Page{
				{Rel: "a.md", URL: "a.html", Title: "A"},
				{Rel: "z/index.md", URL: "z/index.html", Title: "Z", Order: 1},
			},
			want: []string{"z/index.html", "a.html"},
		},
		{
			name:  "empty site",
			pages: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := Build(tt.pages, tt.order)
			if diff := cmp.Diff(tt.want, urls(tree.Pages())); diff != "" {
				t.Errorf("reading order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_SectionTitles(t *testing.T) {
	t.Parallel()

	tree := Build(sitePages(), nil)

	var titles []string
	for _, n := range tree.Roots {
		titles = append(titles, n.Title)
	}

	want := []string{"Home", "Changelog", "Guide", "Reference"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("root titles mismatch (-want +got):\n%s", diff)
	}
	if !tree.Roots[2].Section() {
		t.Error("guide should be a section")
	}
}

// ---------------------------------------------------------------------------
// TestNeighbors
// ---------------------------------------------------------------------------

func TestNeighbors(t *testing.T) {
	t.Parallel()

	tree := Build(sitePages(), nil)

	tests := []struct {
		url      string
		wantPrev string
		wantNext string
	}{
		{"index.html", "", "changelog.html"},
		{"guide/install.html", "guide/index.html", "guide/usage.html"},
		{"reference/api.html", "guide/usage.html", ""},
		{"missing.html", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			prev, next := tree.Neighbors(tt.url)
			gotPrev, gotNext := "", ""
			if prev != nil {
				gotPrev = prev.URL
			}
			if next != nil {
				gotNext = next.URL
			}
			if gotPrev != tt.wantPrev || gotNext != tt.wantNext {
				t.Errorf("Neighbors(%q) = (%q, %q), want (%q, %q)",
					tt.url, gotPrev, gotNext, tt.wantPrev, tt.wantNext)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLinks
// ---------------------------------------------------------------------------

func TestLinks(t *testing.T) {
	t.Parallel()

	tree := Build([]Page{
		{Rel: "index.md", URL: "index.html", Title: "Home"},
		{Rel: "guide/install.md", URL: "guide/install.html", Title: "Install"},
	}, nil)

	got := tree.Links("guide/install.html")
	want := []layout.NavLink{
		{Title: "Home", URL: "../index.html"},
		{Title: "Guide", Section: true, Children: []layout.NavLink{
			{Title: "Install", URL: "../guide/install.html", Active: true},
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Links() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestHumanize
// ---------------------------------------------------------------------------

func TestHumanize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"getting-started.md", "Getting Started"},
		{"api_reference", "Api Reference"},
		{"01-intro.md", "Intro"},
		{"faq", "Faq"},
		{"42.md", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := Humanize(tt.in); got != tt.want {
				t.Errorf("Humanize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
