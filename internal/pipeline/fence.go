package pipeline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DiffKind marks a line as added or removed.
type DiffKind int

// Diff kinds.
const (
	DiffAdd DiffKind = iota + 1
	DiffRemove
)

// String returns the CSS token used for the kind.
func (k DiffKind) String() string {
	switch k {
	case DiffAdd:
		return "add"
	case DiffRemove:
		return "remove"
	}
	return ""
}

// FenceDescriptor is everything known about one fenced code block.
// Line numbers are 1-based and relative to the fence body.
type FenceDescriptor struct {
	Lang       string
	Title      string
	Option     string
	StartLine  int   // first display line number, 1 unless :line-numbers=N
	Numbered   *bool // nil means "use the site default"
	Highlights []int

	Diff        map[int]DiffKind
	Focus       map[int]bool
	Errors      map[int]bool
	Warnings    map[int]bool
	Annotations map[int]int

	Body string
}

func newFenceDescriptor() *FenceDescriptor {
	return &FenceDescriptor{
		StartLine:   1,
		Diff:        make(map[int]DiffKind),
		Focus:       make(map[int]bool),
		Errors:      make(map[int]bool),
		Warnings:    make(map[int]bool),
		Annotations: make(map[int]int),
	}
}

// isHighlighted reports whether a display line is in the highlight set.
func (fd *FenceDescriptor) isHighlighted(displayLine int) bool {
	i := sort.SearchInts(fd.Highlights, displayLine)
	return i < len(fd.Highlights) && fd.Highlights[i] == displayLine
}

// fenceHeader is the parsed info string of an opening fence.
type fenceHeader struct {
	Lang       string
	Title      string
	Option     string
	Highlights []int
}

// MaxHighlightLine is the largest line number a highlight spec can name.
// Larger numbers are dropped and ranges are cut at this line.
const MaxHighlightLine = 10000

// ParseHighlightSpec expands "1,3-5,8" into a sorted, deduplicated slice.
// Invalid elements are ignored. An inverted range such as "5-3" is read as
// "3-5".
func ParseHighlightSpec(spec string) []int {
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || start < 1 {
			continue
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || end < 1 {
				continue
			}
		}
		if end < start {
			start, end = end, start
		}
		if start > MaxHighlightLine {
			continue
		}
		end = min(end, MaxHighlightLine)
		for n := start; n <= end; n++ {
			seen[n] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	lines := make([]int, 0, len(seen))
	for n := range seen {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

// parseFenceHeader parses the info string following the fence token.
// Returns ok=false when there is no language identifier.
func parseFenceHeader(info string) (fenceHeader, bool) {
	info = strings.TrimSpace(info)
	var h fenceHeader
	if info == "" || strings.ContainsAny(info[:1], "[{:") {
		return h, false
	}

	end := strings.IndexAny(info, " \t[{")
	if end == -1 {
		end = len(info)
	}
	h.Lang = info[:end]
	// A ":option" glued to the language ("ts:line-numbers") still counts.
	if i := strings.IndexByte(h.Lang, ':'); i > 0 {
		end = i
		h.Lang = h.Lang[:i]
	}

	rest := info[end:]
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		switch rest[0] {
		case '[':
			closeIdx := strings.IndexByte(rest, ']')
			if closeIdx == -1 {
				return h, true
			}
			h.Title = strings.TrimSpace(rest[1:closeIdx])
			rest = rest[closeIdx+1:]
		case '{':
			closeIdx := strings.IndexByte(rest, '}')
			if closeIdx == -1 {
				return h, true
			}
			h.Highlights = ParseHighlightSpec(rest[1:closeIdx])
			rest = rest[closeIdx+1:]
		case ':':
			stop := strings.IndexAny(rest, " \t[{")
			if stop == -1 {
				stop = len(rest)
			}
			h.Option = rest[1:stop]
			rest = rest[stop:]
		default:
			// Unknown trailing words are ignored.
			stop := strings.IndexAny(rest, " \t")
			if stop == -1 {
				return h, true
			}
			rest = rest[stop:]
		}
	}
	return h, true
}

// applyOption interprets a ":option" on the descriptor.
func (fd *FenceDescriptor) applyOption(opt string) {
	fd.Option = opt
	name, value, hasValue := strings.Cut(opt, "=")
	switch name {
	case "line-numbers":
		on := true
		fd.Numbered = &on
		if hasValue {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				fd.StartLine = n
			}
		}
	case "no-line-numbers":
		off := false
		fd.Numbered = &off
	}
}

var (
	fenceOpenPattern = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})(.*)$")
)

// fence is the location of one complete fenced block inside a document.
// All offsets are byte offsets into the scanned text.
type fence struct {
	Start      int // start of the opening line
	End        int // end of the closing line, including its newline if any
	HeaderEnd  int // end of the opening line, excluding the newline
	BodyStart  int
	BodyEnd    int // start of the closing line
	Indent     string
	Token      string
	Info       string
	Header     fenceHeader
	HasLang    bool
	ClosingRaw string
}

// Body returns the fence body without the trailing newline before the
// closing token.
func (f fence) Body(doc string) string {
	if f.BodyEnd <= f.BodyStart {
		return ""
	}
	return strings.TrimSuffix(doc[f.BodyStart:f.BodyEnd], "\n")
}

// line is one line of a document with its byte offsets.
type line struct {
	Start int
	End   int // excluding the newline
	Next  int // start of the next line
	Text  string
}

// splitLines splits s keeping byte offsets.
func splitLines(s string) []line {
	var lines []line
	start := 0
	for start < len(s) {
		nl := strings.IndexByte(s[start:], '\n')
		if nl == -1 {
			lines = append(lines, line{Start: start, End: len(s), Next: len(s), Text: s[start:]})
			break
		}
		end := start + nl
		lines = append(lines, line{Start: start, End: end, Next: end + 1, Text: s[start:end]})
		start = end + 1
	}
	return lines
}

// isClosingFence reports whether text closes a fence opened with token.
func isClosingFence(text, token string) bool {
	trimmed := strings.TrimLeft(text, " ")
	if len(text)-len(trimmed) > 3 {
		return false
	}
	trimmed = strings.TrimRight(trimmed, " \t")
	if len(trimmed) < len(token) {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != token[0] {
			return false
		}
	}
	return true
}

// scanFences returns every closed fence in doc, in document order.
// An opening fence without a matching close is treated as text.
func scanFences(doc string) []fence {
	lines := splitLines(doc)
	var fences []fence

	for i := 0; i < len(lines); i++ {
		m := fenceOpenPattern.FindStringSubmatch(lines[i].Text)
		if m == nil {
			continue
		}
		token, info := m[2], m[3]
		// Backtick fences cannot carry backticks in their info string.
		if token[0] == '`' && strings.Contains(info, "`") {
			continue
		}
		closeAt := -1
		for j := i + 1; j < len(lines); j++ {
			if isClosingFence(lines[j].Text, token) {
				closeAt = j
				break
			}
		}
		if closeAt == -1 {
			continue
		}

		header, hasLang := parseFenceHeader(info)
		fences = append(fences, fence{
			Start:      lines[i].Start,
			End:        lines[closeAt].Next,
			HeaderEnd:  lines[i].End,
			BodyStart:  lines[i].Next,
			BodyEnd:    lines[closeAt].Start,
			Indent:     m[1],
			Token:      token,
			Info:       info,
			Header:     header,
			HasLang:    hasLang,
			ClosingRaw: lines[closeAt].Text,
		})
		i = closeAt
	}
	return fences
}

// fenceVisitor receives each outer-scope fence with language and its
// document-wide index, and returns the replacement text for [Start,End).
type fenceVisitor func(index int, f fence, doc string) string

// rewriteFences applies visit to every fence that has a language and does
// not start inside an excluded region. Other text is copied unchanged.
// Indices count only visited fences, so every fence-level processor sees
// the same numbering for the same document.
func rewriteFences(doc string, visit fenceVisitor) string {
	fences := scanFences(doc)
	if len(fences) == 0 {
		return doc
	}
	regions := trackRegions(doc)

	var b strings.Builder
	b.Grow(len(doc))
	last, index := 0, 0
	for _, f := range fences {
		if !f.HasLang || regions.contains(f.Start) {
			continue
		}
		b.WriteString(doc[last:f.Start])
		b.WriteString(visit(index, f, doc))
		last = f.End
		index++
	}
	b.WriteString(doc[last:])
	return b.String()
}

// replaceBody rebuilds a fence with a new body, keeping header and closing
// lines byte-for-byte.
func (f fence) replaceBody(doc, body string) string {
	var b strings.Builder
	b.WriteString(doc[f.Start:f.BodyStart])
	if f.BodyEnd > f.BodyStart {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteString(doc[f.BodyEnd:f.End])
	return b.String()
}
