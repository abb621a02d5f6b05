package docsite

import (
	"errors"

	"github.com/alnah/go-docsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown   = errors.New("markdown content cannot be empty")
	ErrFrontMatter     = errors.New("invalid front matter")
	ErrHTMLConversion  = pipeline.ErrHTMLConversion
	ErrProcessorFailed = errors.New("markdown processor failed")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
)
