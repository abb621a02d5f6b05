package site

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-docsite/internal/fileutil"
)

// SitemapFile is the name of the plain-text sitemap in the output directory.
const SitemapFile = "sitemap.txt"

// absoluteURL joins baseURL and a page path.
func absoluteURL(baseURL, page string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + prettyURL(page)
}

// writeSitemap lists one absolute URL per line, in reading order.
func writeSitemap(outDir, baseURL string, pages []string) error {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(absoluteURL(baseURL, p))
		b.WriteByte('\n')
	}
	return fileutil.WriteFile(filepath.Join(outDir, SitemapFile), []byte(b.String()))
}
