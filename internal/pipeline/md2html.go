package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion wraps goldmark failures.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// fenceAttr is the attribute carrying a fence's index from the rewritten
// info string to the highlighted output.
const fenceAttr = "data-fence"

// HTMLConverter turns preprocessed markdown into an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter is the goldmark-backed HTMLConverter.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting. Highlighted fences are emitted inside a
// code-fence wrapper that the code-block postprocessor splits into lines.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.PreventSurroundingPre(true), // the wrapper owns <pre>
				),
				highlighting.WithWrapperRenderer(renderFenceWrapper),
			),
		),
		goldmark.WithParserOptions(
			parser.WithHeadingAttribute(), // ## Title {#custom-id}
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
			// WithUnsafe is not used: container HTML is substituted
			// through placeholders after goldmark runs.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Conversion is synchronous so that processor panics reach the caller's
// recover boundary; the context is checked before and after.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := c.convert(content)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return out, nil
}

func (c *GoldmarkConverter) convert(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// renderFenceWrapper opens and closes the element around one fenced block.
func renderFenceWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</code></pre></div>\n")
		return
	}
	_, _ = w.WriteString(`<div class="code-fence"`)
	if index, ok := fenceIndex(c); ok {
		_, _ = w.WriteString(` data-fence="` + strconv.Itoa(index) + `"`)
	}
	if lang, ok := c.Language(); ok && len(lang) > 0 {
		_, _ = w.WriteString(` data-lang="` + html.EscapeString(string(lang)) + `"`)
	}
	_, _ = w.WriteString(`><pre class="chroma"><code>`)
}

// fenceIndex reads the data-fence attribute, whatever type goldmark parsed it as.
func fenceIndex(c highlighting.CodeBlockContext) (int, bool) {
	attrs := c.Attributes()
	if attrs == nil {
		return 0, false
	}
	v, ok := attrs.Get([]byte(fenceAttr))
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case []byte:
		n, err := strconv.Atoi(string(t))
		return n, err == nil
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	case float64:
		return int(t), true
	}
	return 0, false
}
