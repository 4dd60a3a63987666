// Package xmlview renders the XML produced by a PDF-to-XML conversion
// service for people to read.
//
// # Quick Start
//
// Create a viewer, open a record, and render the views you need:
//
//	v, err := xmlview.NewViewer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	views := v.Open(xmlview.RecordFromXML("report.pdf", xml))
//	page, err := v.PreviewHTML(views, xmlview.NewExpansion("document"))
//
// Open never fails. Formatting and highlighting accept any input; when the
// XML is not well formed, views.TreeErr and views.DocumentErr say why and
// only the structure and document views are replaced by an explanation.
//
// # Views
//
//   - Formatted code: the XML re-indented one tag per line, highlighted.
//   - Source: the XML as received, highlighted.
//   - Structure: a collapsible element tree. The caller owns the Expansion.
//   - Document: pages, sections, paragraphs and tables read from a
//     document > page > section > (paragraph | table) tree.
//
// # Copy and Download
//
// CopyToClipboard and Download always use Record.XMLContent unchanged,
// never the formatted or highlighted text.
//
// # PDF Export
//
// ExportPDF prints the document view through headless Chrome (go-rod):
//
//	pdf, err := v.ExportPDF(ctx, views)
//
// For batch export, use ViewerPool to run several browsers:
//
//	pool := xmlview.NewViewerPool(4)
//	defer pool.Close()
//
//	v, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(v)
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package xmlview
