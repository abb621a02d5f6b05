package site

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// sourcePage is a markdown file found under the source directory.
type sourcePage struct {
	Path string // filesystem path
	Rel  string // slash separated, relative to the source dir
	URL  string // output path relative to the site root
}

// isMarkdown reports whether name has a markdown extension.
func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// skipDir reports whether a directory is never part of the site.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "node_modules")
}

// discoverPages finds all markdown files under srcDir, skipping outDir when
// it lives inside srcDir. A README is used as the directory index unless an
// index page exists; the shadowed README is reported in skipped.
func discoverPages(srcDir, outDir string) (pages []sourcePage, skipped []string, err error) {
	absOut, _ := filepath.Abs(outDir)
	byURL := make(map[string]int)

	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(p); abs == absOut || (p != srcDir && skipDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		page := sourcePage{Path: p, Rel: rel, URL: outputURL(rel)}

		if i, dup := byURL[page.URL]; dup {
			// index.md wins over README.md for the same directory
			if isReadme(page.Rel) {
				skipped = append(skipped, page.Rel)
				return nil
			}
			skipped = append(skipped, pages[i].Rel)
			pages[i] = page
			return nil
		}
		byURL[page.URL] = len(pages)
		pages = append(pages, page)
		return nil
	})
	return pages, skipped, err
}

func isReadme(rel string) bool {
	base := strings.ToLower(path.Base(rel))
	return strings.TrimSuffix(strings.TrimSuffix(base, ".md"), ".markdown") == "readme"
}

// outputURL maps a source path to its page path: guide/install.md becomes
// guide/install.html and README.md becomes index.html.
func outputURL(rel string) string {
	dir, base := path.Split(rel)
	name := strings.TrimSuffix(base, path.Ext(base))
	if isReadme(rel) {
		name = "index"
	}
	return dir + name + ".html"
}

// prettyURL drops a trailing index.html, which web servers serve for the
// directory.
func prettyURL(url string) string {
	if url == "index.html" {
		return ""
	}
	if strings.HasSuffix(url, "/index.html") {
		return strings.TrimSuffix(url, "index.html")
	}
	return url
}
