package site

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-docsite/internal/fileutil"
)

// SearchIndexFile is the name of the search index in the output directory.
const SearchIndexFile = "search.json"

// searchDoc is one entry of the client-side search index.
type searchDoc struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Headings []string `json:"headings,omitempty"`
	Text     string   `json:"text"`
}

// excluded reports whether rel matches one of the search.exclude globs.
// A pattern ending in /** excludes a whole directory.
func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimPrefix(p, "./")
		if dir, ok := strings.CutSuffix(p, "/**"); ok {
			if rel == dir || strings.HasPrefix(rel, dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// skippedElements hold no searchable prose.
var skippedElements = map[string]bool{
	"button": true,
	"script": true,
	"style":  true,
}

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true, "wbr": true,
}

// plainText extracts the visible text of an HTML fragment with whitespace
// collapsed. Buttons and heading permalinks are dropped.
func plainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			tok := z.Token()
			if voidElements[tok.Data] {
				continue
			}
			if skip > 0 || skippedElements[tok.Data] || isHeaderAnchor(tok) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isHeaderAnchor(tok html.Token) bool {
	if tok.Data != "a" {
		return false
	}
	for _, a := range tok.Attr {
		if a.Key == "class" && strings.Contains(a.Val, "header-anchor") {
			return true
		}
	}
	return false
}

// writeSearchIndex writes the index as a JSON array.
func writeSearchIndex(outDir string, docs []searchDoc) error {
	if docs == nil {
		docs = []searchDoc{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding search index: %w", err)
	}
	return fileutil.WriteFile(filepath.Join(outDir, SearchIndexFile), data)
}
