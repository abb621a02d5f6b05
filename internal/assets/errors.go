package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrThemeNotFound    = errors.New("highlight theme not found")

	// ErrInvalidAssetName rejects names that could address another file.
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")

	// ErrPathTraversal reports a theme file resolving outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
