// Package yamlutil is the single entry point to the YAML library, used by
// config loading, page front matter and 'docsite init'.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds the documents Unmarshal accepts.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge  = errors.New("yamlutil: input too large")
)

// Unmarshal decodes data into v. Unknown keys are ignored.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and fails on unknown keys.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrEmptyInput
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// SplitFrontMatter cuts a leading YAML block fenced by "---" lines off a
// markdown document. The closing fence may also be "...". When there is
// no such block ok is false and body is content unchanged. A leading BOM
// is tolerated.
func SplitFrontMatter(content string) (meta []byte, body string, ok bool) {
	lines := strings.SplitAfter(strings.TrimPrefix(content, "\ufeff"), "\n")
	if len(lines) < 2 || !isFence(lines[0], false) {
		return nil, content, false
	}

	for i, ln := range lines[1:] {
		if isFence(ln, true) {
			return []byte(strings.Join(lines[1:i+1], "")), strings.Join(lines[i+2:], ""), true
		}
	}
	return nil, content, false
}

func isFence(line string, closing bool) bool {
	t := strings.TrimRight(line, " \t\r\n")
	return t == "---" || (closing && t == "...")
}

// UnmarshalFrontMatter decodes the front matter of content into v and
// returns the remaining body. Without front matter v is left untouched.
func UnmarshalFrontMatter(content string, v any) (body string, err error) {
	meta, body, ok := SplitFrontMatter(content)
	if !ok || strings.TrimSpace(string(meta)) == "" {
		return body, nil
	}
	if err := Unmarshal(meta, v); err != nil {
		return content, err
	}
	return body, nil
}
