package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSInjector inserts stylesheets into a complete HTML document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string
}

// CSSInjection places all non-empty stylesheets in one <style> element.
type CSSInjection struct{}

var _ CSSInjector = (*CSSInjection)(nil)

// InjectCSS inserts the stylesheets before </head>, else right after the
// opening <body> tag, else at the very start. The document is returned
// unchanged when there is nothing to inject or ctx is done.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent string, stylesheets ...string) string {
	if ctx.Err() != nil {
		return htmlContent
	}

	var css strings.Builder
	for _, sheet := range stylesheets {
		if strings.TrimSpace(sheet) == "" {
			continue
		}
		if css.Len() > 0 {
			css.WriteByte('\n')
		}
		css.WriteString(sanitizeCSS(sheet))
	}
	if css.Len() == 0 {
		return htmlContent
	}

	block := "<style>" + css.String() + "</style>"
	at := styleInsertionPoint(htmlContent)
	return htmlContent[:at] + block + htmlContent[at:]
}

// styleInsertionPoint tokenizes htmlContent so that tags inside comments,
// scripts and attribute values are never mistaken for the real ones.
func styleInsertionPoint(htmlContent string) int {
	z := html.NewTokenizer(strings.NewReader(htmlContent))
	offset, afterBody := 0, -1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		n := len(z.Raw())
		name, _ := z.TagName()
		switch {
		case tt == html.EndTagToken && atom.Lookup(name) == atom.Head:
			return offset
		case tt == html.StartTagToken && afterBody < 0 && atom.Lookup(name) == atom.Body:
			afterBody = offset + n
		}
		offset += n
	}
	if afterBody >= 0 {
		return afterBody
	}
	return 0
}

// sanitizeCSS keeps a stylesheet from closing its <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
