package cards

import "errors"

// Sentinel errors for card rendering.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("card screenshot failed")
	ErrWriteCard      = errors.New("failed to write card image")
)
