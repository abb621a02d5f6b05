package pipeline

import (
	"regexp"
	"strings"
)

var tablePattern = regexp.MustCompile(`(?s)<table>.*?</table>`)

// TableProcessor wraps every table in a scrollable container.
type TableProcessor struct{}

// Name implements Processor.
func (TableProcessor) Name() string { return "table-wrap" }

// Postprocess implements Postprocessor.
func (TableProcessor) Postprocess(doc string, _ *RenderContext) string {
	if !strings.Contains(doc, "<table>") {
		return doc
	}
	return tablePattern.ReplaceAllString(doc, `<div class="table-wrapper">$0</div>`)
}
