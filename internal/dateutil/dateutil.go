// Package dateutil formats the "last updated" footer date. Formats use
// readable tokens ("DD/MM/YYYY") or a preset name ("long").
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for empty, oversized or malformed formats.
var ErrInvalidDateFormat = errors.New("invalid date format")

const (
	// DefaultDateFormat applies when the footer format is left empty.
	DefaultDateFormat = "YYYY-MM-DD"

	maxFormatLen = 50
)

// Presets are case-insensitive aliases for common formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"datetime": "YYYY-MM-DD HH:mm",
}

// tokens is tried in order; longer tokens sharing a prefix come first.
var tokens = [...][2]string{
	{"YYYY", "2006"}, {"YY", "06"},
	{"MMMM", "January"}, {"MMM", "Jan"}, {"MM", "01"}, {"M", "1"},
	{"DD", "02"}, {"D", "2"},
	{"HH", "15"}, {"hh", "03"},
	{"mm", "04"}, {"ss", "05"},
}

// Layout resolves presets and translates format into a time layout.
// Text inside square brackets is copied verbatim, so "[on] D MMM"
// renders as "on 3 Feb".
func Layout(format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if p, ok := Presets[strings.ToLower(format)]; ok {
		format = p
	}
	if len(format) > maxFormatLen {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidDateFormat, maxFormatLen)
	}

	var b strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		rest = writeToken(&b, rest)
	}
	return b.String(), nil
}

// writeToken emits the layout for the token at the start of s, or its
// first byte as a literal, and returns what remains.
func writeToken(b *strings.Builder, s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok[0]) {
			b.WriteString(tok[1])
			return s[len(tok[0]):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Format renders t using a token format or preset name.
func Format(t time.Time, format string) (string, error) {
	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
