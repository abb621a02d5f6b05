package main

// Notes:
// - exitCodeFor: we test sentinels from every package the CLI surfaces,
//   plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and that custom codes stay below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	docsite "github.com/alnah/go-docsite"
	"github.com/alnah/go-docsite/internal/assets"
	"github.com/alnah/go-docsite/internal/cards"
	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/devserver"
	"github.com/alnah/go-docsite/internal/site"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", cards.ErrBrowserConnect, ExitBrowser},
		{"page create", cards.ErrPageCreate, ExitBrowser},
		{"page load", cards.ErrPageLoad, ExitBrowser},
		{"screenshot", cards.ErrScreenshot, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("cards: %w", cards.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"config exists", ErrConfigExists, ExitIO},
		{"source dir", site.ErrSourceDir, ExitIO},
		{"no pages", site.ErrNoPages, ExitIO},
		{"write assets", site.ErrWriteAssets, ExitIO},
		{"listen", devserver.ErrListen, ExitIO},
		{"watch", devserver.ErrWatch, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config not found error type", &config.NotFoundError{Tried: []string{"docsite.yaml"}}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"front matter", docsite.ErrFrontMatter, ExitUsage},
		{"invalid toc depth", docsite.ErrInvalidTOCDepth, ExitUsage},
		{"theme not found", assets.ErrThemeNotFound, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", assets.ErrInvalidBasePath, ExitUsage},
		{"unsafe clean", site.ErrUnsafeClean, ExitUsage},
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"conflicting flags", ErrConflictingFlags, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"unknown format", ErrUnknownFormat, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"build failed", ErrBuildFailed, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell reserved codes", code)
		}
	}
}
