package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// groupPanelKey marks a child context rendering a code-group panel.
// Panels carry no title bar and no copy button of their own.
const groupPanelKey = "pipeline.groupPanel"

// FenceOptionsProcessor parses every outer-scope fence header into its
// descriptor and rewrites the header to carry only the language and the
// fence index.
type FenceOptionsProcessor struct{}

// Name implements Processor.
func (FenceOptionsProcessor) Name() string { return "fence-options" }

// Preprocess implements Preprocessor.
func (FenceOptionsProcessor) Preprocess(content string, rc *RenderContext) string {
	return rewriteFences(content, func(index int, f fence, doc string) string {
		fd := rc.Fence(index)
		fd.Lang = f.Header.Lang
		fd.Title = f.Header.Title
		fd.Highlights = f.Header.Highlights
		if f.Header.Option != "" {
			fd.applyOption(f.Header.Option)
		}
		fd.Body = f.Body(doc)

		var b strings.Builder
		b.WriteString(f.Indent)
		b.WriteString(f.Token)
		b.WriteString(f.Header.Lang)
		b.WriteString(` {` + fenceAttr + `="`)
		b.WriteString(strconv.Itoa(index))
		b.WriteString(`"}`)
		b.WriteString(doc[f.HeaderEnd:f.End])
		return b.String()
	})
}

var (
	codeFencePattern = regexp.MustCompile(`(?s)<div class="code-fence"(?: data-fence="(\d+)")?(?: data-lang="([^"]*)")?><pre class="chroma"><code>(.*?)</code></pre></div>\n?`)
)

// CodeBlockProcessor wraps highlighted fences into per-line spans and adds
// the title bar, copy data and annotation hooks.
type CodeBlockProcessor struct{}

// Name implements Processor.
func (CodeBlockProcessor) Name() string { return "code-blocks" }

// Postprocess implements Postprocessor.
func (CodeBlockProcessor) Postprocess(doc string, rc *RenderContext) string {
	if !strings.Contains(doc, `<div class="code-fence"`) {
		return doc
	}
	matches := codeFencePattern.FindAllStringSubmatchIndex(doc, -1)
	var b strings.Builder
	b.Grow(len(doc) + len(matches)*256)
	last := 0
	for _, m := range matches {
		b.WriteString(doc[last:m[0]])
		var fd *FenceDescriptor
		if m[2] >= 0 {
			if n, err := strconv.Atoi(doc[m[2]:m[3]]); err == nil {
				fd, _ = rc.lookupFence(n)
			}
		}
		lang := ""
		if m[4] >= 0 {
			lang = doc[m[4]:m[5]]
		}
		b.WriteString(renderCodeBlock(doc[m[6]:m[7]], lang, fd, rc))
		last = m[1]
		if fd != nil && len(fd.Annotations) > 0 {
			last = markAnnotationList(doc, last, &b)
		}
	}
	b.WriteString(doc[last:])
	return b.String()
}

// renderCodeBlock builds the final markup for one fence.
func renderCodeBlock(inner, lang string, fd *FenceDescriptor, rc *RenderContext) string {
	var (
		sourceLines int
		copyText    string
	)
	if fd != nil {
		sourceLines = strings.Count(fd.Body, "\n") + 1
		copyText = copyableText(fd)
	} else {
		plain := strings.TrimSuffix(html.UnescapeString(visibleText(inner)), "\n")
		sourceLines = strings.Count(plain, "\n") + 1
		copyText = plain
	}

	numbered := rc.Config.Markdown.LineNumbers
	if fd != nil && fd.Numbered != nil {
		numbered = *fd.Numbered
	}
	_, inGroup := rc.Get(groupPanelKey)

	classes := []string{"code-block"}
	if lang != "" {
		classes = append(classes, "language-"+lang)
	}
	if numbered {
		classes = append(classes, "line-numbers")
	}
	if fd != nil {
		if len(fd.Focus) > 0 {
			classes = append(classes, "has-focus")
		}
		if len(fd.Diff) > 0 {
			classes = append(classes, "has-diff")
		}
	}

	lines := WrapLines(inner, fd, sourceLines, numbered)

	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(strings.Join(classes, " "))
	b.WriteByte('"')
	if lang != "" {
		b.WriteString(` data-lang="` + lang + `"`)
	}
	b.WriteString(` data-copy="` + html.EscapeString(copyText) + `">`)
	if fd != nil && fd.Title != "" && !inGroup {
		b.WriteString(`<div class="code-title">` + html.EscapeString(fd.Title) + `</div>`)
	}
	if !inGroup {
		b.WriteString(copyButton)
	}
	b.WriteString(`<pre class="chroma"><code>`)
	b.WriteString(lines)
	b.WriteString("</code></pre></div>\n")
	return b.String()
}

const copyButton = `<button class="copy-code" type="button" aria-label="Copy code">Copy</button>`

// copyableText is the cleaned body without removed diff lines.
func copyableText(fd *FenceDescriptor) string {
	if len(fd.Diff) == 0 {
		return fd.Body
	}
	lines := strings.Split(fd.Body, "\n")
	kept := make([]string, 0, len(lines))
	for i, ln := range lines {
		if fd.Diff[i+1] == DiffRemove {
			continue
		}
		kept = append(kept, ln)
	}
	return strings.Join(kept, "\n")
}

// markAnnotationList tags an ordered list that directly follows an
// annotated fence. It returns the new read position in doc.
func markAnnotationList(doc string, pos int, b *strings.Builder) int {
	rest := doc[pos:]
	trimmed := strings.TrimLeft(rest, " \t\n")
	if !strings.HasPrefix(trimmed, "<ol>") {
		return pos
	}
	b.WriteString(rest[:len(rest)-len(trimmed)])
	b.WriteString(`<ol class="code-annotations">`)
	return pos + (len(rest) - len(trimmed)) + len("<ol>")
}
