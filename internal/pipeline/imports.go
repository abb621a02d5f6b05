package pipeline

import (
	"path"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// importPattern matches "<<< @/path/file.go#region{1,3} [title]".
var importPattern = regexp.MustCompile(`^( {0,3})<<<[ \t]+(@/)?([^\s#{\[]+)(?:#([\w-]+))?(\{[^}]*\})?(?:[ \t]+\[([^\]]*)\])?[ \t]*$`)

// regionStartPattern and regionEndPattern match "#region name" and
// "#endregion" in any comment style.
var (
	regionStartPattern = regexp.MustCompile(`^\s*(?://|#|<!--|/\*|--|;)?\s*#?region\s+([\w-]+)`)
	regionEndPattern   = regexp.MustCompile(`^\s*(?://|#|<!--|/\*|--|;)?\s*#?endregion\b`)
)

// CodeImportProcessor replaces import lines with fenced blocks holding the
// referenced file. Files are read through the context's SnippetSource.
// Without a source, or when a file cannot be read, the line is kept and a
// warning is recorded.
type CodeImportProcessor struct{}

// Name implements Processor.
func (CodeImportProcessor) Name() string { return "code-import" }

// Preprocess implements Preprocessor.
func (CodeImportProcessor) Preprocess(content string, rc *RenderContext) string {
	if !strings.Contains(content, "<<<") {
		return content
	}
	fences := scanFences(content)
	inFence := func(offset int) bool {
		for _, f := range fences {
			if offset >= f.Start && offset < f.End {
				return true
			}
		}
		return false
	}

	var b strings.Builder
	b.Grow(len(content))
	for _, ln := range splitLines(content) {
		m := importPattern.FindStringSubmatch(ln.Text)
		if m == nil || inFence(ln.Start) {
			b.WriteString(content[ln.Start:ln.Next])
			continue
		}
		block, ok := importSnippet(m, rc)
		if !ok {
			b.WriteString(content[ln.Start:ln.Next])
			continue
		}
		b.WriteString(block)
		if ln.Next > ln.End {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// importSnippet builds the fence for one import line.
func importSnippet(m []string, rc *RenderContext) (string, bool) {
	indent, file, region, highlights, title := m[1], m[3], m[4], m[5], m[6]
	if rc.Snippets == nil {
		rc.warnf("code import %q: no snippet source", file)
		return "", false
	}
	body, err := rc.Snippets.ReadSnippet(file)
	if err != nil {
		rc.warnf("code import %q: %v", file, err)
		return "", false
	}
	body = strings.TrimRight(normalizeLineEndings(body), "\n")
	if region != "" {
		extracted, ok := extractRegion(body, region)
		if !ok {
			rc.warnf("code import %q: region %q not found", file, region)
			return "", false
		}
		body = extracted
	}

	token := fenceTokenFor(body)
	var b strings.Builder
	b.WriteString(indent + token + SnippetLanguage(file))
	if title == "" {
		title = path.Base(file)
	}
	b.WriteString(" [" + title + "]")
	if highlights != "" {
		b.WriteString(" " + highlights)
	}
	b.WriteByte('\n')
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteString(indent + token)
	return b.String(), true
}

// SnippetLanguage picks the fence language for an imported file. An
// extension shared by several languages is resolved through the alias
// table, so ".md" is Markdown rather than GCC Machine Description.
func SnippetLanguage(file string) string {
	ext := strings.TrimPrefix(path.Ext(file), ".")
	if lang, safe := enry.GetLanguageByExtension(file); lang != "" {
		if !safe {
			if alias, ok := enry.GetLanguageByAlias(ext); ok {
				lang = alias
			}
		}
		return fenceLanguage(lang)
	}
	if lang, _ := enry.GetLanguageByFilename(file); lang != "" {
		return fenceLanguage(lang)
	}
	if ext != "" {
		return strings.ToLower(ext)
	}
	return "text"
}

func fenceLanguage(lang string) string {
	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}

// extractRegion returns the lines between "#region name" and the matching
// "#endregion", without the marker lines.
func extractRegion(body, name string) (string, bool) {
	lines := strings.Split(body, "\n")
	start, depth := -1, 0
	for i, ln := range lines {
		if m := regionStartPattern.FindStringSubmatch(ln); m != nil {
			if start == -1 && m[1] == name {
				start = i + 1
				depth = 1
				continue
			}
			if start != -1 {
				depth++
			}
			continue
		}
		if start != -1 && regionEndPattern.MatchString(ln) {
			depth--
			if depth == 0 {
				return strings.Join(lines[start:i], "\n"), true
			}
		}
	}
	return "", false
}

// fenceTokenFor returns a backtick run longer than any run inside body.
func fenceTokenFor(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
