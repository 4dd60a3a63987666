// Package preview composes the standalone HTML page for one record: a
// metadata header, a tab strip, and one section per view. Views arrive
// already rendered; this package only lays them out and supplies the empty
// states.
package preview

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/cdileep23/go-xmlview/internal/dateutil"
)

// NoXMLMessage is shown in place of every view when the record has no XML.
const NoXMLMessage = "No XML code provided"

// Header is the record metadata shown above the views. Zero fields are
// left out.
type Header struct {
	Filename  string
	CreatedAt time.Time
	Pages     int
	PDFLink   string
	Size      int // bytes of XML
}

// View is one tab of the page. A nil Body renders Empty instead.
type View struct {
	ID    string
	Title string
	Body  g.Node
	Empty string
}

// Page is everything the preview needs.
type Page struct {
	Title       string
	Header      Header
	DateFormat  string   // dateutil format or preset, empty = default
	Stylesheets []string // inlined in order
	Views       []View
}

// Render writes p as a complete HTML5 document.
func Render(w io.Writer, p Page) error {
	return Node(p).Render(w)
}

// Node builds the document tree for p.
func Node(p Page) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(p.Title)),
				g.Map(p.Stylesheets, func(css string) g.Node {
					return h.StyleEl(g.Raw(css))
				}),
			),
			h.Body(
				headerNode(p.Header, p.DateFormat),
				g.If(len(p.Views) > 1, tabsNode(p.Views)),
				g.Map(p.Views, viewNode),
			),
		),
	)
}

func headerNode(hd Header, dateFormat string) g.Node {
	var meta []g.Node
	if !hd.CreatedAt.IsZero() {
		meta = append(meta, h.Span(h.Class("created"), g.Text(FormatDate(hd.CreatedAt, dateFormat))))
	}
	if hd.Pages > 0 {
		meta = append(meta, h.Span(h.Class("pages"), g.Text("PDF "+PageCount(hd.Pages))))
	}
	meta = append(meta, h.Span(h.Class("size"), g.Text("XML "+FileSize(hd.Size))))
	if isWebLink(hd.PDFLink) {
		meta = append(meta, h.A(h.Href(hd.PDFLink), h.Target("_blank"), h.Rel("noopener"), g.Text("Open PDF")))
	}

	name := hd.Filename
	if name == "" {
		name = "Untitled"
	}
	return h.Header(h.Class("record"),
		h.H1(g.Text(name)),
		h.Div(h.Class("meta"), g.Group(meta)),
	)
}

func tabsNode(views []View) g.Node {
	return h.Nav(h.Class("viewer-tabs"),
		g.Map(views, func(v View) g.Node {
			return h.A(h.Href("#view-"+v.ID), g.Text(v.Title))
		}),
	)
}

func viewNode(v View) g.Node {
	body := v.Body
	if body == nil {
		body = EmptyState(v.Empty)
	}
	return h.Section(h.Class("view"), h.ID("view-"+v.ID),
		h.H2(g.Text(v.Title)),
		body,
	)
}

// EmptyState renders msg as a placeholder paragraph.
func EmptyState(msg string) g.Node {
	return h.Div(h.Class("empty-state"), h.P(g.Text(msg)))
}

// Unavailable explains why a structural view is missing.
func Unavailable(view string, err error) string {
	return fmt.Sprintf("The %s view is unavailable: %v. The code view still shows the source.", view, err)
}

// CodeBlock wraps span markup from pipeline.RenderHTML, which is already
// escaped.
func CodeBlock(markup string) g.Node {
	return h.Pre(h.Class("xml-code"), h.Code(g.Raw(markup)))
}

// FormatDate renders t with format, falling back to the default format
// when format is invalid.
func FormatDate(t time.Time, format string) string {
	s, err := dateutil.Format(t, format)
	if err != nil {
		s, _ = dateutil.Format(t, dateutil.DefaultDateFormat)
	}
	return s
}

// PageCount pluralizes n pages.
func PageCount(n int) string {
	if n == 1 {
		return "1 page"
	}
	return strconv.Itoa(n) + " pages"
}

// FileSize renders n bytes as B, KB or MB with one decimal.
func FileSize(n int) string {
	switch {
	case n < 1024:
		return strconv.Itoa(n) + " B"
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}

// isWebLink reports whether a PDF link is rendered as an anchor: only http
// and https links are.
func isWebLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
