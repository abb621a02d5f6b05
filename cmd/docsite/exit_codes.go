package main

import (
	"errors"
	"os"

	docsite "github.com/alnah/go-docsite"
	"github.com/alnah/go-docsite/internal/assets"
	"github.com/alnah/go-docsite/internal/cards"
	"github.com/alnah/go-docsite/internal/config"
	"github.com/alnah/go-docsite/internal/devserver"
	"github.com/alnah/go-docsite/internal/site"
)

// Exit codes for the docsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error, failed pages
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, port busy
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cards.ErrBrowserConnect) ||
		errors.Is(err, cards.ErrPageCreate) ||
		errors.Is(err, cards.ErrPageLoad) ||
		errors.Is(err, cards.ErrScreenshot) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, docsite.ErrEmptyMarkdown) ||
		errors.Is(err, docsite.ErrFrontMatter) ||
		errors.Is(err, docsite.ErrInvalidTOCDepth) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrScriptNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, site.ErrUnsafeClean) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, site.ErrSourceDir) ||
		errors.Is(err, site.ErrNoPages) ||
		errors.Is(err, site.ErrWriteAssets) ||
		errors.Is(err, devserver.ErrListen) ||
		errors.Is(err, devserver.ErrWatch) {
		return ExitIO
	}

	return ExitGeneral
}
