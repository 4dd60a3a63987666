package xmlview

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/cdileep23/go-xmlview/internal/fileutil"
	"github.com/cdileep23/go-xmlview/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion so tests run without a
// browser.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer renders a local HTML file.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds per-export settings.
type pdfOptions struct {
	Page  *PageSettings // nil = defaults
	Title string        // printed in the footer
}

// footerMargin is the extra bottom margin, in inches, that keeps body text
// clear of the page-number footer.
const footerMargin = 0.25

// rodRenderer prints with headless Chrome. Rod downloads Chromium on first
// use unless ROD_BROWSER_BIN names a binary.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser, r.launcher = browser, l
	return nil
}

// Close shuts the browser down and reaps its helper processes.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens filePath in a new tab and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPDFOptions maps page settings onto Chrome's print parameters. Every
// page gets a footer with the title and "n/total".
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	var page *PageSettings
	title := ""
	if opts != nil {
		page, title = opts.Page, opts.Title
	}
	width, height := page.dimensions()
	margin := DefaultMargin
	if page != nil {
		margin = page.Margin
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(width),
		PaperHeight:         floatPtr(height),
		MarginTop:           floatPtr(margin),
		MarginBottom:        floatPtr(margin + footerMargin),
		MarginLeft:          floatPtr(margin),
		MarginRight:         floatPtr(margin),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<span></span>",
		FooterTemplate:      buildFooterTemplate(title, margin),
	}
}

// buildFooterTemplate fills Chrome's footer. pageNumber and totalPages are
// classes Chrome substitutes.
func buildFooterTemplate(title string, margin float64) string {
	left := ""
	if title != "" {
		left = `<span style="float: left;">` + html.EscapeString(title) + `</span>`
	}
	return fmt.Sprintf(`<div style="font-size: 9px; font-family: sans-serif; color: #888; width: 100%%; padding: 0 %.2fin;">%s<span style="float: right;"><span class="pageNumber"></span>/<span class="totalPages"></span></span></div>`, margin, left)
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter writes the HTML to a temp file and prints it.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF converts a complete HTML document to PDF bytes.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
