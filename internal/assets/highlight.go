package assets

import (
	"fmt"
	"sort"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightCSS returns the stylesheet for the chroma theme used by code blocks.
// Selectors are scoped to the .chroma class the pipeline emits on <pre>.
func HighlightCSS(theme string) (string, error) {
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}

	var sb strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&sb, style); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return sb.String(), nil
}

// ThemeNames returns the sorted names of all available highlight themes.
func ThemeNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}
