package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholders use Unicode Private Use Area characters. They pass through
// goldmark unchanged (no WithUnsafe needed) and are replaced after
// HTML generation.
const (
	MarkStartPlaceholder = "\uE000" // ==highlight== start
	MarkEndPlaceholder   = "\uE001" // ==highlight== end
	SlotStartPlaceholder = "\uE002" // rendered container slot start
	SlotEndPlaceholder   = "\uE003" // rendered container slot end
)

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==([^=\n](?:[^\n]*?[^=\n])??)==`)
	slotPattern      = regexp.MustCompile(`(?:<p>)?` + SlotStartPlaceholder + `(\d+)` + SlotEndPlaceholder + `(?:</p>)?`)
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// NormalizeProcessor converts line endings so every later stage sees "\n".
type NormalizeProcessor struct{}

// Name implements Processor.
func (NormalizeProcessor) Name() string { return "normalize" }

// Preprocess implements Preprocessor.
func (NormalizeProcessor) Preprocess(content string, _ *RenderContext) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return normalizeLineEndings(content)
}

// MarkProcessor turns ==text== into <mark>text</mark>. Fenced code and
// inline code spans are left alone.
type MarkProcessor struct{}

// Name implements Processor.
func (MarkProcessor) Name() string { return "mark" }

// Preprocess implements Preprocessor.
func (MarkProcessor) Preprocess(content string, _ *RenderContext) string {
	if !strings.Contains(content, "==") {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, f := range scanFences(content) {
		b.WriteString(convertHighlights(content[last:f.Start]))
		b.WriteString(content[f.Start:f.End])
		last = f.End
	}
	b.WriteString(convertHighlights(content[last:]))
	return b.String()
}

// Postprocess implements Postprocessor.
func (MarkProcessor) Postprocess(html string, _ *RenderContext) string {
	return ConvertMarkPlaceholders(html)
}

// convertHighlights transforms ==text== to placeholder markers outside
// inline code spans.
func convertHighlights(text string) string {
	parts := strings.Split(text, "`")
	for i := 0; i < len(parts); i += 2 {
		parts[i] = highlightPattern.ReplaceAllString(parts[i], MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}
	return strings.Join(parts, "`")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	if !strings.Contains(content, MarkStartPlaceholder) {
		return content
	}
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// slotPlaceholder returns the markdown block standing in for slot k.
func slotPlaceholder(k int) string {
	return "\n" + SlotStartPlaceholder + strconv.Itoa(k) + SlotEndPlaceholder + "\n\n"
}

// PlaceholderProcessor swaps slot placeholders for the HTML rendered by
// container processors. It runs last so that earlier postprocessors never
// see already-finished container output.
type PlaceholderProcessor struct{}

// Name implements Processor.
func (PlaceholderProcessor) Name() string { return "placeholders" }

// Postprocess implements Postprocessor.
func (PlaceholderProcessor) Postprocess(html string, rc *RenderContext) string {
	if len(rc.slots) == 0 || !strings.Contains(html, SlotStartPlaceholder) {
		return html
	}
	return slotPattern.ReplaceAllStringFunc(html, func(m string) string {
		sub := slotPattern.FindStringSubmatch(m)
		k, err := strconv.Atoi(sub[1])
		if err != nil || k < 0 || k >= len(rc.slots) {
			return m
		}
		return rc.slots[k]
	})
}
