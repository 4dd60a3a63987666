package xmlview

import (
	"fmt"
	"strings"
	"time"

	"github.com/cdileep23/go-xmlview/internal/docview"
	"github.com/cdileep23/go-xmlview/internal/pipeline"
	"github.com/cdileep23/go-xmlview/internal/treeview"
	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// Core types re-exported for library users.
type (
	// Element is a node of the built tree.
	Element = xmltree.Element
	// Span is a run of highlighted text with one style class.
	Span = pipeline.Span
	// Document is the page/section projection of a tree.
	Document = docview.Document
	// Expansion holds the open/closed state of the tree view, keyed by
	// element name. The caller owns it.
	Expansion = treeview.Expansion
)

// NewExpansion returns an Expansion with names open.
func NewExpansion(names ...string) *Expansion {
	return treeview.NewExpansion(names...)
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter, portrait, half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil p is valid and means
// defaults. Comparison is case-insensitive and p is not modified.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width and height in inches after orientation.
// p must be valid or nil.
func (p *PageSettings) dimensions() (width, height float64) {
	if p == nil {
		p = DefaultPageSettings()
	}
	size := paperSizes[strings.ToLower(p.Size)]
	width, height = size[0], size[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// Option configures a Viewer.
type Option func(*viewerConfig)

type viewerConfig struct {
	timeout        time.Duration
	indent         int
	maxDepth       int
	highlightStyle string
	lineNumbers    bool
	style          string
	assetPath      string
	dateFormat     string
	page           *PageSettings
	appendSource   bool
	pdf            pdfConverter
}

const (
	defaultTimeout = 30 * time.Second
	defaultIndent  = 2
)

// WithTimeout bounds PDF export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("xmlview: WithTimeout duration must be positive")
	}
	return func(c *viewerConfig) { c.timeout = d }
}

// WithIndent sets the spaces per level of the formatted view.
func WithIndent(n int) Option {
	return func(c *viewerConfig) { c.indent = n }
}

// WithMaxDepth bounds the structure view. Zero or less means
// xmltree.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *viewerConfig) { c.maxDepth = n }
}

// WithHighlightStyle selects the chroma style of the code view. An empty
// name keeps the built-in span classes of the preview stylesheet.
func WithHighlightStyle(name string) Option {
	return func(c *viewerConfig) { c.highlightStyle = name }
}

// WithLineNumbers numbers lines in a chroma-styled code view.
func WithLineNumbers(on bool) Option {
	return func(c *viewerConfig) { c.lineNumbers = on }
}

// WithStyle selects the preview stylesheet by name.
func WithStyle(name string) Option {
	return func(c *viewerConfig) { c.style = name }
}

// WithAssetPath adds a directory of stylesheets that override the embedded
// ones.
func WithAssetPath(dir string) Option {
	return func(c *viewerConfig) { c.assetPath = dir }
}

// WithDateFormat sets the dateutil format of the preview header.
func WithDateFormat(format string) Option {
	return func(c *viewerConfig) { c.dateFormat = format }
}

// WithPage sets the PDF page settings.
func WithPage(p *PageSettings) Option {
	return func(c *viewerConfig) { c.page = p }
}

// WithAppendSource adds the formatted XML as a highlighted appendix to the
// printed document.
func WithAppendSource(on bool) Option {
	return func(c *viewerConfig) { c.appendSource = on }
}
