package docsite

import (
	"fmt"

	"github.com/alnah/go-docsite/internal/yamlutil"
)

// ParseFrontMatter splits a leading YAML block from content.
// Content without front matter is returned unchanged with a zero FrontMatter.
// Unknown keys are ignored so pages can carry metadata for other tools.
func ParseFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter
	body, err := yamlutil.UnmarshalFrontMatter(content, &fm)
	if err != nil {
		return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, body, nil
}
