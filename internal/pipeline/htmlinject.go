package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headingPattern matches a rendered heading with its attributes and
// content, or a container slot whose headings belong at that position.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])([^>]*)>(.*?)</h[1-6]>|` + SlotStartPlaceholder + `(\d+)` + SlotEndPlaceholder)

// idAttrPattern extracts an existing id attribute.
var idAttrPattern = regexp.MustCompile(`\bid="([^"]*)"`)

// htmlTagPattern matches HTML tags for stripping.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags and unescapes entities.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(s, "")))
}

// Slugify folds text into a URL fragment: accents are removed, letters
// lowercased, and runs of other characters collapsed to a single dash.
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		if r == '_' {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// AnchorProcessor gives every heading a unique id and a permalink, and
// records the headings as TOC entries. Headings rendered inside tabs and
// code-group panels are listed where their container sits.
type AnchorProcessor struct{}

// Name implements Processor.
func (AnchorProcessor) Name() string { return "heading-anchors" }

// Postprocess implements Postprocessor.
func (AnchorProcessor) Postprocess(doc string, rc *RenderContext) string {
	if !strings.Contains(doc, "<h") && len(rc.slotTOC) == 0 {
		return doc
	}
	return headingPattern.ReplaceAllStringFunc(doc, func(m string) string {
		sub := headingPattern.FindStringSubmatch(m)
		if sub[4] != "" {
			k, _ := strconv.Atoi(sub[4])
			rc.toc = append(rc.toc, rc.slotTOC[k]...)
			return m
		}
		level, _ := strconv.Atoi(sub[1])
		attrs, inner := sub[2], sub[3]
		text := stripHTMLTags(inner)

		var id string
		if idm := idAttrPattern.FindStringSubmatch(attrs); idm != nil {
			id = idm[1]
			rc.uniqueSlug(id)
		} else {
			id = rc.uniqueSlug(Slugify(text))
			attrs = ` id="` + id + `"` + attrs
		}
		rc.addTOCEntry(TOCEntry{Level: level, ID: id, Text: text})

		return fmt.Sprintf(`<h%d%s>%s <a class="header-anchor" href="#%s" aria-label="Permalink to %s">#</a></h%d>`,
			level, attrs, inner, id, html.EscapeString(text), level)
	})
}

// TOCOptions selects which headings appear in a generated table of contents.
type TOCOptions struct {
	Title    string
	MinDepth int
	MaxDepth int
	Numbered bool
}

// DefaultTOCOptions is the "On this page" outline: h2 and h3.
var DefaultTOCOptions = TOCOptions{Title: "On this page", MinDepth: 2, MaxDepth: 3}

// numberingState tracks hierarchical position for nesting and numbering.
type numberingState struct {
	counters     [6]int
	lastLevel    int
	minLevelSeen int
}

func newNumberingState() *numberingState {
	return &numberingState{}
}

// next returns the number string and effective depth for a heading level.
// Depths are normalized to the shallowest heading seen, and a jump of
// more than one level is treated as a direct child.
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}
	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}
	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// GenerateTOC renders entries as a nested outline. It returns "" when no
// entry falls inside the depth range.
func GenerateTOC(entries []TOCEntry, opts TOCOptions) string {
	if opts.MinDepth < 1 {
		opts.MinDepth = 1
	}
	if opts.MaxDepth < opts.MinDepth || opts.MaxDepth > 6 {
		opts.MaxDepth = 6
	}

	var buf strings.Builder
	numbering := newNumberingState()
	written := 0
	for _, e := range entries {
		if e.Level < opts.MinDepth || e.Level > opts.MaxDepth {
			continue
		}
		if written == 0 {
			buf.WriteString(`<nav class="toc" aria-label="Table of contents">`)
			if opts.Title != "" {
				buf.WriteString(`<div class="toc-title">`)
				buf.WriteString(html.EscapeString(opts.Title))
				buf.WriteString(`</div>`)
			}
			buf.WriteString(`<div class="toc-list">`)
		}
		written++

		num, depth := numbering.next(e.Level)
		fmt.Fprintf(&buf, `<div class="toc-item depth-%d"><a href="#%s">`, depth, html.EscapeString(e.ID))
		if opts.Numbered {
			buf.WriteString(num)
			buf.WriteByte(' ')
		}
		buf.WriteString(html.EscapeString(e.Text))
		buf.WriteString(`</a></div>`)
	}
	if written == 0 {
		return ""
	}
	buf.WriteString(`</div></nav>`)
	return buf.String()
}
