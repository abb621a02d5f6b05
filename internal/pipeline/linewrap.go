package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// emptySpanPattern matches the empty pairs left behind when a tag is
// reopened right before it closes.
var emptySpanPattern = regexp.MustCompile(`<span[^>]*></span>`)

// dropEmptySpans removes empty span pairs, innermost first.
func dropEmptySpans(fragment string) string {
	for strings.Contains(fragment, "></span>") && emptySpanPattern.MatchString(fragment) {
		fragment = emptySpanPattern.ReplaceAllString(fragment, "")
	}
	return fragment
}

// SplitHighlightedLines splits highlighted HTML into one fragment per line.
// Tags left open at a newline are closed at the end of that fragment and
// reopened at the start of the next one, so every fragment is balanced on
// its own. At least one fragment is always returned.
func SplitHighlightedLines(highlighted string) []string {
	var (
		lines   []string
		cur     strings.Builder
		tag     strings.Builder
		open    []string // raw opening tags, outermost first
		inTag   bool
		inQuote byte
	)

	closeAll := func() {
		for i := len(open) - 1; i >= 0; i-- {
			cur.WriteString("</")
			cur.WriteString(tagName(open[i]))
			cur.WriteByte('>')
		}
	}
	reopen := func() {
		for _, t := range open {
			cur.WriteString(t)
		}
	}

	for i := 0; i < len(highlighted); i++ {
		c := highlighted[i]
		if inTag {
			tag.WriteByte(c)
			switch {
			case inQuote != 0:
				if c == inQuote {
					inQuote = 0
				}
			case c == '"' || c == '\'':
				inQuote = c
			case c == '>':
				token := tag.String()
				tag.Reset()
				inTag = false
				switch {
				case strings.HasPrefix(token, "</"):
					open = popTag(open, tagName(token))
				case strings.HasSuffix(token, "/>"), strings.HasPrefix(token, "<!"), isVoidTag(tagName(token)):
				default:
					open = append(open, token)
				}
				cur.WriteString(token)
			}
			continue
		}
		switch c {
		case '<':
			inTag = true
			tag.WriteByte(c)
		case '\n':
			closeAll()
			lines = append(lines, cur.String())
			cur.Reset()
			reopen()
		default:
			cur.WriteByte(c)
		}
	}
	if inTag {
		// Unterminated tag: keep it as text so nothing is lost.
		cur.WriteString(tag.String())
	}
	closeAll()
	lines = append(lines, cur.String())
	return lines
}

// popTag removes the most recent open tag named name.
func popTag(open []string, name string) []string {
	for i := len(open) - 1; i >= 0; i-- {
		if tagName(open[i]) == name {
			return append(open[:i], open[i+1:]...)
		}
	}
	return open
}

// tagName extracts the lowercase element name from a raw tag token.
func tagName(token string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(token, "<"), "/")
	end := strings.IndexAny(s, " \t\r\n/>")
	if end == -1 {
		end = len(s)
	}
	return strings.ToLower(s[:end])
}

func isVoidTag(name string) bool {
	switch name {
	case "br", "hr", "img", "input", "wbr", "col", "area", "base", "embed", "link", "meta", "source", "track":
		return true
	}
	return false
}

// visibleText strips tags from a fragment.
func visibleText(fragment string) string {
	var b strings.Builder
	inTag := false
	for i := 0; i < len(fragment); i++ {
		switch c := fragment[i]; {
		case c == '<':
			inTag = true
		case c == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// alignLines fits fragments to the source line count: trailing fragments
// with no visible text beyond count are dropped.
func alignLines(fragments []string, count int) []string {
	if count < 1 {
		count = 1
	}
	for len(fragments) > count && visibleText(fragments[len(fragments)-1]) == "" {
		fragments = fragments[:len(fragments)-1]
	}
	return fragments
}

// LineClasses returns the ordered class list for a source line:
// base, highlight, diff, focus, error, warning.
func LineClasses(fd *FenceDescriptor, sourceLine int) []string {
	classes := []string{"line"}
	if fd == nil {
		return classes
	}
	display := sourceLine + fd.StartLine - 1
	if fd.isHighlighted(display) {
		classes = append(classes, "highlighted")
	}
	if kind, ok := fd.Diff[sourceLine]; ok {
		classes = append(classes, "diff", kind.String())
	}
	if fd.Focus[sourceLine] {
		classes = append(classes, "focused")
	}
	if fd.Errors[sourceLine] {
		classes = append(classes, "has-error")
	}
	if fd.Warnings[sourceLine] {
		classes = append(classes, "has-warning")
	}
	return classes
}

// WrapLines wraps highlighted code into per-line spans carrying the
// descriptor's line classes. numbered adds a data-line attribute with the
// display line number.
func WrapLines(highlighted string, fd *FenceDescriptor, sourceLines int, numbered bool) string {
	fragments := alignLines(SplitHighlightedLines(highlighted), sourceLines)
	start := 1
	if fd != nil {
		start = fd.StartLine
	}

	var b strings.Builder
	b.Grow(len(highlighted) + len(fragments)*32)
	for i, frag := range fragments {
		if i > 0 {
			b.WriteByte('\n')
		}
		src := i + 1
		b.WriteString(`<span class="`)
		b.WriteString(strings.Join(LineClasses(fd, src), " "))
		b.WriteByte('"')
		if numbered {
			b.WriteString(` data-line="`)
			b.WriteString(strconv.Itoa(src + start - 1))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		b.WriteString(dropEmptySpans(frag))
		if fd != nil {
			if n, ok := fd.Annotations[src]; ok {
				b.WriteString(annotationButton(n))
			}
		}
		b.WriteString(`</span>`)
	}
	return b.String()
}

func annotationButton(n int) string {
	num := strconv.Itoa(n)
	return `<button class="code-annotation" type="button" data-annotation="` + num +
		`" aria-label="Annotation ` + num + `">` + num + `</button>`
}
