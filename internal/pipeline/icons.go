package pipeline

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Icon sources reported on a Panel.
const (
	IconSourceNone     = ""
	IconSourceManual   = "manual"
	IconSourceLanguage = "language"
)

var (
	iconPrefixPattern = regexp.MustCompile(`^:([a-z0-9][a-z0-9-]*):\s*(.*)$`)
	inlineIconPattern = regexp.MustCompile(`(^|[^A-Za-z0-9_:])(:(?:[a-z][a-z0-9]*(?:-[a-z0-9]+)+|[a-z][a-z0-9]*):)`)
	codeSpanPattern   = regexp.MustCompile(`(?s)<(pre|code|script|style)[\s>].*?</(?:pre|code|script|style)>`)
)

// languageSlugs overrides slugs that cannot be derived by lowercasing.
var languageSlugs = map[string]string{
	"C++":         "cplusplus",
	"C#":          "csharp",
	"F#":          "fsharp",
	"Objective-C": "objectivec",
	"Shell":       "bash",
	"Vim Script":  "vim",
	"Emacs Lisp":  "emacs",
}

// splitIconPrefix parses a ":icon: label" name. It reports ok=false when
// name carries no icon prefix.
func splitIconPrefix(name string) (icon, label string, ok bool) {
	m := iconPrefixPattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return "", name, false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// LanguageIcon resolves a fence language or alias to an icon slug.
// It returns "" for languages go-enry does not know.
func LanguageIcon(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	canonical, ok := enry.GetLanguageByAlias(lang)
	if !ok || canonical == "" {
		return ""
	}
	if slug, ok := languageSlugs[canonical]; ok {
		return slug
	}
	var b strings.Builder
	for _, r := range strings.ToLower(canonical) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolvePanelIcon applies the icon rules for a tab panel: a manual prefix
// wins, then the language of a body made of exactly one fence.
func resolvePanelIcon(name, body string) (label, icon, source string) {
	if icon, label, ok := splitIconPrefix(name); ok {
		return label, icon, IconSourceManual
	}
	if lang, ok := soleFenceLanguage(body); ok {
		if icon := LanguageIcon(lang); icon != "" {
			return name, icon, IconSourceLanguage
		}
	}
	return name, "", IconSourceNone
}

// soleFenceLanguage reports the language of body when body is exactly one
// fenced block surrounded only by blank lines.
func soleFenceLanguage(body string) (string, bool) {
	fences := scanFences(body)
	if len(fences) != 1 || !fences[0].HasLang {
		return "", false
	}
	f := fences[0]
	if strings.TrimSpace(body[:f.Start]) != "" || strings.TrimSpace(body[f.End:]) != "" {
		return "", false
	}
	return f.Header.Lang, true
}

func iconTag(icon string) string {
	return `<i class="ph ph-` + icon + `" aria-hidden="true"></i>`
}

// IconProcessor replaces :icon-name: shortcodes in rendered HTML with icon
// elements. Text inside pre, code, script and style elements is skipped,
// as are attribute values.
type IconProcessor struct{}

// Name implements Processor.
func (IconProcessor) Name() string { return "icons" }

// Postprocess implements Postprocessor.
func (IconProcessor) Postprocess(doc string, _ *RenderContext) string {
	if strings.Count(doc, ":") < 2 {
		return doc
	}
	var b strings.Builder
	b.Grow(len(doc))
	last := 0
	for _, loc := range codeSpanPattern.FindAllStringIndex(doc, -1) {
		b.WriteString(replaceIconsInText(doc[last:loc[0]]))
		b.WriteString(doc[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(replaceIconsInText(doc[last:]))
	return b.String()
}

// replaceIconsInText substitutes shortcodes in text nodes only.
func replaceIconsInText(fragment string) string {
	var b strings.Builder
	for len(fragment) > 0 {
		lt := strings.IndexByte(fragment, '<')
		if lt == -1 {
			b.WriteString(replaceShortcodes(fragment))
			break
		}
		b.WriteString(replaceShortcodes(fragment[:lt]))
		gt := strings.IndexByte(fragment[lt:], '>')
		if gt == -1 {
			b.WriteString(fragment[lt:])
			break
		}
		b.WriteString(fragment[lt : lt+gt+1])
		fragment = fragment[lt+gt+1:]
	}
	return b.String()
}

// replaceShortcodes turns :name: into an icon when the opening colon starts
// the text or follows a non-word character, so "a:b:c" stays literal.
func replaceShortcodes(text string) string {
	matches := inlineIconPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[4]])
		b.WriteString(iconTag(strings.Trim(text[m[4]:m[5]], ":")))
		last = m[5]
	}
	b.WriteString(text[last:])
	return b.String()
}
