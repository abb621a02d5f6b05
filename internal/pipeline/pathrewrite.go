package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkProcessor rewrites links to markdown sources into links to the
// generated pages: "guide/setup.md#install" becomes "guide/setup.html#install".
// External URLs, anchors and non-markdown targets are left alone.
type LinkProcessor struct{}

// Name implements Processor.
func (LinkProcessor) Name() string { return "link-rewrite" }

// Postprocess implements Postprocessor.
func (LinkProcessor) Postprocess(doc string, rc *RenderContext) string {
	if !strings.Contains(doc, ".md") || !strings.Contains(doc, "href=") {
		return doc
	}
	out, err := RewriteMarkdownLinks(doc)
	if err != nil {
		rc.warnf("link rewrite skipped: %v", err)
		return doc
	}
	return out
}

// RewriteMarkdownLinks rewrites a[href] values that point at .md files.
func RewriteMarkdownLinks(htmlContent string) (string, error) {
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	if !rewriteNode(doc) {
		return htmlContent, nil
	}
	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only the children are rendered.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and reports whether anything changed.
func rewriteNode(n *html.Node) bool {
	changed := false
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if v, ok := pageLink(attr.Val); ok {
				n.Attr[i].Val = v
				changed = true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c) {
			changed = true
		}
	}
	return changed
}

// pageLink maps a link to a markdown source onto its generated page.
func pageLink(href string) (string, bool) {
	if !isLocalPath(href) {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if !strings.EqualFold(path.Ext(u.Path), ".md") {
		return "", false
	}
	u.Path = strings.TrimSuffix(u.Path, path.Ext(u.Path)) + ".html"
	return u.String(), true
}

// isLocalPath reports whether href targets a file of this site.
func isLocalPath(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return false
	}
	for _, scheme := range []string{"http://", "https://", "file://", "data:", "mailto:", "javascript:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return false
		}
	}
	return true
}
