package pipeline

import "strings"

// CodeGroupProcessor renders top-level :::code-group containers. Every
// fence in the container becomes a panel labelled by its [title].
type CodeGroupProcessor struct{}

// Name implements Processor.
func (CodeGroupProcessor) Name() string { return "code-group" }

// Preprocess implements Preprocessor.
func (CodeGroupProcessor) Preprocess(content string, rc *RenderContext) string {
	if !strings.Contains(content, ":::") {
		return content
	}
	return replaceContainers(content, containerCodeGroup, func(c container) string {
		panels := buildCodeGroupPanels(c.Body(content), rc)
		if len(panels) == 0 {
			return "\n"
		}
		id := rc.uniqueSlug("code-group")
		return slotPlaceholder(rc.storeSlot(renderTablist("code-group", id, panels, true)))
	})
}

// buildCodeGroupPanels renders each fence of a code-group body on its own.
// Fences without a label are reported and rendered with an empty name.
func buildCodeGroupPanels(body string, rc *RenderContext) []Panel {
	fences := scanFences(body)
	panels := make([]Panel, 0, len(fences))
	for i, f := range fences {
		src := body[f.Start:f.End]
		name := f.Header.Title
		if name == "" {
			rc.warnf("code-group: fence %d has no [label]", i+1)
		}
		label, icon, source := name, "", IconSourceNone
		if name != "" {
			label, icon, source = resolvePanelIcon(name, src)
		} else if li := LanguageIcon(f.Header.Lang); li != "" {
			icon, source = li, IconSourceLanguage
		}
		panels = append(panels, Panel{
			Name:       label,
			Icon:       icon,
			IconSource: source,
			HTML: rc.renderNested(src, func(c *RenderContext) {
				c.Set(groupPanelKey, true)
			}),
			First: len(panels) == 0,
		})
	}
	return panels
}
