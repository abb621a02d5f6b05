package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var sample = time.Date(2025, time.February, 3, 14, 5, 9, 0, time.UTC)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		// Presets, any case.
		{"", "2025-02-03"},
		{"iso", "2025-02-03"},
		{"EUROPEAN", "03/02/2025"},
		{"us", "02/03/2025"},
		{"Long", "February 3, 2025"},
		{"datetime", "2025-02-03 14:05"},

		// Tokens.
		{"YY.M.D", "25.2.3"},
		{"MMM DD", "Feb 03"},
		{"hh:mm:ss", "02:05:09"},
		{"HH[h]mm", "14h05"},

		// Literals.
		{"[Updated] YYYY", "Updated 2025"},
		{"[YYYY] YYYY", "YYYY 2025"},
		{"[]DD", "03"},
		{"D -- M", "3 -- 2"},
		{"Q", "Q"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, err := Format(sample, tt.format)
			if err != nil {
				t.Fatalf("Format(%q) error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestLayout_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unclosed":     "[Updated YYYY",
		"late bracket": "YYYY [x",
		"too long":     strings.Repeat("D", maxFormatLen+1),
	}

	for name, format := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := Layout(format); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("Layout(%q) error = %v, want ErrInvalidDateFormat", format, err)
			}
		})
	}
}

func TestLayout_BracketPosition(t *testing.T) {
	t.Parallel()

	_, err := Layout("YYYY [x")
	if err == nil || !strings.Contains(err.Error(), "position 5") {
		t.Errorf("error = %v, want position 5", err)
	}
}

func TestLayout_MaxLengthAccepted(t *testing.T) {
	t.Parallel()

	if _, err := Layout(strings.Repeat("-", maxFormatLen)); err != nil {
		t.Errorf("format at the limit should pass: %v", err)
	}
}

func TestPresetsAreValid(t *testing.T) {
	t.Parallel()

	for name, format := range Presets {
		if _, err := Layout(format); err != nil {
			t.Errorf("preset %s (%q): %v", name, format, err)
		}
	}
}
