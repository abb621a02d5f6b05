package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Panel is one independently rendered pane of a tabs or code-group block.
type Panel struct {
	Name       string
	Icon       string
	IconSource string
	HTML       string
	First      bool
}

var tabSectionPattern = regexp.MustCompile(`^==[ \t]+(\S.*?)[ \t]*$`)

// tabSection is one "== name" section of a tabs body before rendering.
type tabSection struct {
	Name string
	Body string
}

// splitTabSections splits a tabs body on "== name" lines. Text before the
// first section is dropped. Lines inside fenced code or inside a nested
// container never start a section.
func splitTabSections(body string) []tabSection {
	fences := scanFences(body)
	nested := trackRegions(body)
	skipped := func(offset int) bool {
		if nested.contains(offset) {
			return true
		}
		for _, f := range fences {
			if offset >= f.Start && offset < f.End {
				return true
			}
		}
		return false
	}

	var (
		sections []tabSection
		cur      *tabSection
		start    int
	)
	flush := func(end int) {
		if cur != nil {
			cur.Body = strings.Trim(body[start:end], "\n")
			sections = append(sections, *cur)
		}
	}
	for _, ln := range splitLines(body) {
		if skipped(ln.Start) {
			continue
		}
		m := tabSectionPattern.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		flush(ln.Start)
		cur = &tabSection{Name: m[1]}
		start = ln.Next
	}
	flush(len(body))
	return sections
}

// TabsProcessor renders top-level :::tabs containers. Each section is
// rendered by the full pipeline in a child context; the result replaces
// the container through a placeholder.
type TabsProcessor struct{}

// Name implements Processor.
func (TabsProcessor) Name() string { return "tabs" }

// Preprocess implements Preprocessor.
func (TabsProcessor) Preprocess(content string, rc *RenderContext) string {
	if !strings.Contains(content, ":::") {
		return content
	}
	return replaceContainers(content, containerTabs, func(c container) string {
		panels := buildTabPanels(c.Body(content), rc)
		if len(panels) == 0 {
			return "\n"
		}
		id := rc.uniqueSlug("tabs")
		return slotPlaceholder(rc.storeSlot(renderTablist("tabs", id, panels, false)))
	})
}

// buildTabPanels renders every section of a tabs body.
func buildTabPanels(body string, rc *RenderContext) []Panel {
	sections := splitTabSections(body)
	panels := make([]Panel, 0, len(sections))
	for i, s := range sections {
		label, icon, source := resolvePanelIcon(s.Name, s.Body)
		panels = append(panels, Panel{
			Name:       label,
			Icon:       icon,
			IconSource: source,
			HTML:       rc.renderNested(s.Body),
			First:      i == 0,
		})
	}
	return panels
}

// replaceContainers swaps each top-level container called name for the
// text returned by render.
func replaceContainers(doc, name string, render func(container) string) string {
	containers := scanContainers(doc, name)
	if len(containers) == 0 {
		return doc
	}
	var b strings.Builder
	b.Grow(len(doc))
	last := 0
	for _, c := range containers {
		b.WriteString(doc[last:c.Start])
		b.WriteString(render(c))
		last = c.End
	}
	b.WriteString(doc[last:])
	return b.String()
}

// renderTablist renders panels as an ARIA tablist. The first panel is
// selected and visible. sharedCopy adds one copy button for the group.
func renderTablist(kind, id string, panels []Panel, sharedCopy bool) string {
	var b strings.Builder
	b.WriteString(`<div class="` + kind + `" id="` + id + `">`)
	b.WriteString(`<div class="` + kind + `-nav">`)
	b.WriteString(`<div class="` + kind + `-list" role="tablist">`)
	for i, p := range panels {
		n := strconv.Itoa(i)
		selected := strconv.FormatBool(p.First)
		tabindex := "-1"
		class := kind + "-tab"
		if p.First {
			tabindex = "0"
			class += " active"
		}
		b.WriteString(`<button class="` + class + `" type="button" role="tab" id="` + id + `-tab-` + n +
			`" aria-controls="` + id + `-panel-` + n + `" aria-selected="` + selected + `" tabindex="` + tabindex + `">`)
		if p.Icon != "" {
			b.WriteString(iconTag(p.Icon))
		}
		b.WriteString(`<span>` + html.EscapeString(p.Name) + `</span></button>`)
	}
	b.WriteString(`</div>`)
	if sharedCopy {
		b.WriteString(copyButton)
	}
	b.WriteString(`</div>`)
	for i, p := range panels {
		n := strconv.Itoa(i)
		hidden := strconv.FormatBool(!p.First)
		b.WriteString(`<div class="` + kind + `-panel" role="tabpanel" id="` + id + `-panel-` + n +
			`" aria-labelledby="` + id + `-tab-` + n + `" aria-hidden="` + hidden + `"`)
		if !p.First {
			b.WriteString(` hidden`)
		}
		b.WriteString(`>`)
		b.WriteString(p.HTML)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
