package xmlview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	g "maragu.dev/gomponents"

	"github.com/cdileep23/go-xmlview/internal/assets"
	"github.com/cdileep23/go-xmlview/internal/docview"
	"github.com/cdileep23/go-xmlview/internal/pipeline"
	"github.com/cdileep23/go-xmlview/internal/preview"
	"github.com/cdileep23/go-xmlview/internal/treeview"
	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
)

// View identifiers, in display order.
const (
	ViewCode     = "code"
	ViewRaw      = "raw"
	ViewTree     = "tree"
	ViewDocument = "document"
)

// Viewer renders records. Create with NewViewer and Close when done.
//
// Open, PreviewHTML and PrintHTML are safe for concurrent use. ExportPDF
// drives one browser and is not; use a ViewerPool for parallel exports.
type Viewer struct {
	cfg           viewerConfig
	formatter     pipeline.Formatter
	previewCSS    string
	printCSS      string
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewViewer creates a Viewer. It fails when a named style cannot be
// loaded or the page settings are invalid.
func NewViewer(opts ...Option) (*Viewer, error) {
	cfg := viewerConfig{
		timeout: defaultTimeout,
		indent:  defaultIndent,
		style:   assets.DefaultStyleName,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.page.Validate(); err != nil {
		return nil, err
	}
	if cfg.highlightStyle != "" && !pipeline.StyleExists(cfg.highlightStyle) {
		return nil, fmt.Errorf("%w: %q", ErrHighlightStyle, cfg.highlightStyle)
	}
	if cfg.indent < 0 {
		cfg.indent = defaultIndent
	}
	if cfg.maxDepth <= 0 {
		cfg.maxDepth = xmltree.DefaultMaxDepth
	}

	resolver, err := assets.NewStyleResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	previewCSS, err := resolver.LoadStyle(cfg.style)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	}
	printCSS, err := resolver.LoadStyle(assets.PrintStyleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStyleNotFound, err)
	}

	v := &Viewer{
		cfg:           cfg,
		formatter:     pipeline.Formatter{Indent: strings.Repeat(" ", cfg.indent)},
		previewCSS:    previewCSS,
		printCSS:      printCSS,
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		pdfConverter:  cfg.pdf,
	}
	if v.pdfConverter == nil {
		v.pdfConverter = newRodConverter(cfg.timeout)
	}
	return v, nil
}

// Close releases the browser, if one was started.
func (v *Viewer) Close() error {
	if v.pdfConverter != nil {
		return v.pdfConverter.Close()
	}
	return nil
}

// Views holds every rendition of one record. Structural failures are
// recorded per view: TreeErr and DocumentErr never affect Code or Raw.
type Views struct {
	Record    Record
	Formatted string
	Code      []Span // highlighted Formatted
	Raw       []Span // highlighted XMLContent as written
	Tree      *Element
	TreeErr   error
	Document  Document
	// DocumentErr is set when the tree could not be built at all.
	DocumentErr error
}

// Empty reports whether the record has no XML.
func (vs *Views) Empty() bool {
	return vs.Record.XMLContent == ""
}

// Open computes all views of rec. It never fails; see Views for how
// errors are reported.
func (v *Viewer) Open(rec Record) *Views {
	vs := &Views{
		Record:    rec,
		Formatted: v.formatter.Format(rec.XMLContent),
		Raw:       pipeline.Highlight(rec.XMLContent),
		Document:  Document{Pages: []docview.Page{}},
	}
	vs.Code = pipeline.Highlight(vs.Formatted)

	tree, err := xmltree.Build(rec.XMLContent)
	if err != nil {
		vs.TreeErr, vs.DocumentErr = err, err
		return vs
	}
	vs.Tree = tree
	vs.TreeErr = xmltree.CheckDepth(tree, v.cfg.maxDepth)
	vs.Document = docview.Render(tree)
	return vs
}

// WriteTree writes the structure outline of vs.
func (v *Viewer) WriteTree(w io.Writer, vs *Views, exp *Expansion) error {
	if vs.TreeErr != nil {
		return vs.TreeErr
	}
	return treeview.WriteText(w, vs.Tree, exp, v.cfg.maxDepth)
}

// WriteCode writes spans for a terminal, colored with the configured chroma
// style, or as plain text when color is false.
func (v *Viewer) WriteCode(w io.Writer, spans []Span, color bool) error {
	if !color {
		_, err := io.WriteString(w, pipeline.Text(spans))
		return err
	}
	return pipeline.WriteTerminal(w, spans, v.cfg.highlightStyle)
}

// PreviewHTML renders vs as a standalone HTML page with one section per
// view. exp sets which tree elements start open.
func (v *Viewer) PreviewHTML(vs *Views, exp *Expansion) ([]byte, error) {
	sheets := []string{v.previewCSS}
	if v.cfg.highlightStyle != "" {
		var css bytes.Buffer
		if err := pipeline.WriteChromaCSS(&css, v.cfg.highlightStyle); err != nil {
			return nil, err
		}
		sheets = append(sheets, css.String())
	}

	code, err := v.codeView(ViewCode, "Formatted", vs, vs.Code)
	if err != nil {
		return nil, err
	}
	raw, err := v.codeView(ViewRaw, "Source", vs, vs.Raw)
	if err != nil {
		return nil, err
	}

	page := preview.Page{
		Title:       recordTitle(vs.Record),
		Header:      previewHeader(vs.Record),
		DateFormat:  v.cfg.dateFormat,
		Stylesheets: sheets,
		Views:       []preview.View{code, raw, v.treeView(vs, exp), documentView(vs)},
	}

	var buf bytes.Buffer
	if err := preview.Render(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return buf.Bytes(), nil
}

func (v *Viewer) codeView(id, title string, vs *Views, spans []Span) (preview.View, error) {
	view := preview.View{ID: id, Title: title, Empty: preview.NoXMLMessage}
	if vs.Empty() {
		return view, nil
	}
	if v.cfg.highlightStyle == "" {
		view.Body = preview.CodeBlock(pipeline.RenderHTML(spans))
		return view, nil
	}
	var buf bytes.Buffer
	if err := pipeline.WriteChromaHTML(&buf, spans, v.cfg.highlightStyle, v.cfg.lineNumbers); err != nil {
		return view, err
	}
	view.Body = g.Raw(buf.String())
	return view, nil
}

func (v *Viewer) treeView(vs *Views, exp *Expansion) preview.View {
	view := preview.View{ID: ViewTree, Title: "Structure", Empty: preview.NoXMLMessage}
	switch {
	case vs.Empty():
	case vs.TreeErr != nil:
		view.Empty = preview.Unavailable("structure", vs.TreeErr)
	default:
		node, err := treeview.HTML(vs.Tree, exp, v.cfg.maxDepth)
		if err != nil {
			view.Empty = preview.Unavailable("structure", err)
			break
		}
		view.Body = node
	}
	return view
}

func documentView(vs *Views) preview.View {
	view := preview.View{ID: ViewDocument, Title: "Document", Empty: preview.NoXMLMessage}
	switch {
	case vs.Empty():
	case vs.DocumentErr != nil:
		view.Empty = preview.Unavailable("document", vs.DocumentErr)
	case vs.Document.Empty():
		view.Empty = "The document has no pages."
	default:
		view.Body = docview.HTML(vs.Document)
	}
	return view
}

func previewHeader(rec Record) preview.Header {
	hd := preview.Header{
		Filename: rec.OriginalFilename,
		Pages:    rec.PDFPages,
		PDFLink:  rec.PDFLink,
		Size:     len(rec.XMLContent),
	}
	if t, ok := rec.Created(); ok {
		hd.CreatedAt = t
	}
	return hd
}

func recordTitle(rec Record) string {
	if rec.OriginalFilename != "" {
		return rec.OriginalFilename
	}
	return "XML preview"
}

// PrintMarkdown is the Markdown that PrintHTML converts: a title heading,
// the document view, and with WithAppendSource the formatted XML.
func (v *Viewer) PrintMarkdown(vs *Views) (string, error) {
	if vs.Empty() {
		return "", ErrMissingXMLContent
	}
	if vs.DocumentErr != nil {
		return "", fmt.Errorf("%w: %w", ErrNoDocument, vs.DocumentErr)
	}

	var md strings.Builder
	md.WriteString("# " + docview.EscapeMarkdown(vs.Record.BaseName()) + "\n\n")
	if err := docview.WriteMarkdown(&md, vs.Document); err != nil {
		return "", err
	}
	if v.cfg.appendSource {
		md.WriteString("\n## Source\n\n")
		md.WriteString(pipeline.FenceCode("xml", vs.Formatted))
	}
	return md.String(), nil
}

// PrintHTML renders the printable page of vs, styled for paper.
func (v *Viewer) PrintHTML(ctx context.Context, vs *Views) (string, error) {
	md, err := v.PrintMarkdown(vs)
	if err != nil {
		return "", err
	}

	htmlContent, err := v.htmlConverter.ToHTML(ctx, recordTitle(vs.Record), md)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	sheets := []string{v.printCSS}
	if v.cfg.appendSource {
		var css bytes.Buffer
		if err := pipeline.WriteChromaCSS(&css, v.cfg.highlightStyle); err != nil {
			return "", err
		}
		sheets = append(sheets, css.String())
	}
	htmlContent = v.cssInjector.InjectCSS(ctx, htmlContent, sheets...)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return htmlContent, nil
}

// ExportPDF prints vs to PDF. Without a deadline on ctx the configured
// timeout applies.
func (v *Viewer) ExportPDF(ctx context.Context, vs *Views) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.timeout)
		defer cancel()
	}

	htmlContent, err := v.PrintHTML(ctx, vs)
	if err != nil {
		return nil, err
	}

	pdf, err := v.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Page:  v.cfg.page,
		Title: recordTitle(vs.Record),
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}
