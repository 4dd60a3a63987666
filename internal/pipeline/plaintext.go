package pipeline

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips the markup produced by RenderHTML (or any wrapper around
// it) and returns the escaped text it carries. Text tokens are taken raw so
// entities are kept as written: PlainText(RenderHTML(spans)) == Plain(spans).
func PlainText(markup string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return b.String(), nil
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}
