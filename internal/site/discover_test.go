package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Notes:
// - discoverPages walks a real temp tree; WalkDir visits entries in lexical
//   order, so "README.md" is seen before "index.md".
// - Hidden, underscore and node_modules directories are covered together.

// writeTree creates files under root; keys are slash separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func TestDiscoverPages(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"README.md":             "# Readme",
		"index.md":              "# Home",
		"guide/README.md":       "# Guide",
		"guide/install.md":      "# Install",
		"_drafts/wip.md":        "# WIP",
		".git/notes.md":         "# Notes",
		"node_modules/pkg/x.md": "# Pkg",
		"site/old.md":           "# Built",
		"img/logo.png":          "png",
		"guide/notes.markdown":  "# Notes",
		"guide/data.json":       "{}",
	})

	pages, skipped, err := discoverPages(src, filepath.Join(src, "site"))
	if err != nil {
		t.Fatalf("discoverPages() error = %v", err)
	}

	var got []string
	for _, p := range pages {
		got = append(got, p.Rel+" -> "+p.URL)
	}
	want := []string{
		"index.md -> index.html",
		"guide/README.md -> guide/index.html",
		"guide/install.md -> guide/install.html",
		"guide/notes.markdown -> guide/notes.html",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"README.md"}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverPages_MissingDir(t *testing.T) {
	t.Parallel()

	_, _, err := discoverPages(filepath.Join(t.TempDir(), "missing"), "out")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestOutputURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"index.md", "index.html"},
		{"README.md", "index.html"},
		{"readme.markdown", "index.html"},
		{"guide/install.md", "guide/install.html"},
		{"guide/Readme.md", "guide/index.html"},
		{"a/b/c.markdown", "a/b/c.html"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			if got := outputURL(tt.rel); got != tt.want {
				t.Errorf("outputURL(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestPrettyURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"index.html", ""},
		{"guide/index.html", "guide/"},
		{"guide/install.html", "guide/install.html"},
		{"myindex.html", "myindex.html"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			if got := prettyURL(tt.url); got != tt.want {
				t.Errorf("prettyURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSkipDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{".", false},
		{"guide", false},
		{".git", true},
		{"_partials", true},
		{"node_modules", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := skipDir(tt.name); got != tt.want {
				t.Errorf("skipDir(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
