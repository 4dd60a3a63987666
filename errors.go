package xmlview

import (
	"errors"

	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// Sentinel errors for library operations.
var (
	ErrMissingXMLContent = errors.New("record has no xmlContent")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrHTMLConversion    = errors.New("HTML conversion failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrNoDocument        = errors.New("record has no printable document")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset and style errors.
	ErrStyleNotFound        = errors.New("style not found")
	ErrInvalidAssetPath     = errors.New("invalid asset path")
	ErrHighlightStyle       = errors.New("unknown highlight style")
	ErrClipboardUnavailable = errors.New("no clipboard program found")
)

// Structural errors of the tree builder. Views carries them in TreeErr and
// DocumentErr; match with errors.Is.
var (
	ErrUnbalancedTags   = xmltree.ErrUnbalancedTags
	ErrUnexpectedEOF    = xmltree.ErrUnexpectedEOF
	ErrMaxDepthExceeded = xmltree.ErrMaxDepthExceeded
	ErrNoRootElement    = xmltree.ErrNoRootElement
	ErrMultipleRoots    = xmltree.ErrMultipleRoots
)

// Typed structural errors, for errors.As.
type (
	UnbalancedTagsError       = xmltree.UnbalancedTagsError
	UnexpectedEndOfInputError = xmltree.UnexpectedEndOfInputError
	MaxDepthExceededError     = xmltree.MaxDepthExceededError
)

// IsStructural reports whether err is one of the tree builder's structural
// errors, the kind that downgrades only the structural views.
func IsStructural(err error) bool {
	return errors.Is(err, ErrUnbalancedTags) ||
		errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrMaxDepthExceeded) ||
		errors.Is(err, ErrNoRootElement) ||
		errors.Is(err, ErrMultipleRoots)
}
