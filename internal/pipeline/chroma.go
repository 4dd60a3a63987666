package pipeline

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultChromaStyle is the chroma style used when none is configured.
const DefaultChromaStyle = "monokai"

// chromaTypes maps span styles onto chroma token types so that any chroma
// style and formatter can render highlighted XML.
var chromaTypes = map[Style]chroma.TokenType{
	StylePlain:       chroma.Text,
	StyleComment:     chroma.Comment,
	StyleDeclaration: chroma.CommentPreproc,
	StyleAttrName:    chroma.NameAttribute,
	StyleAttrValue:   chroma.LiteralString,
	StyleTagDelim:    chroma.Punctuation,
	StyleTagName:     chroma.NameTag,
}

// ChromaTokens converts spans to chroma tokens. Token values are unescaped,
// since chroma formatters do their own escaping.
func ChromaTokens(spans []Span) []chroma.Token {
	tokens := make([]chroma.Token, 0, len(spans))
	for _, s := range spans {
		tokens = append(tokens, chroma.Token{Type: chromaTypes[s.Style], Value: unescape(s.Text)})
	}
	return tokens
}

// lookupStyle returns the named chroma style, or the default one.
// styles.Get falls back to its own default for unknown names.
func lookupStyle(name string) *chroma.Style {
	if name == "" {
		name = DefaultChromaStyle
	}
	return styles.Get(name)
}

// StyleExists reports whether chroma knows the named style.
func StyleExists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// WriteTerminal writes spans with 256-color ANSI escapes.
func WriteTerminal(w io.Writer, spans []Span, style string) error {
	formatter := formatters.Get("terminal256")
	if err := formatter.Format(w, lookupStyle(style), chroma.Literator(ChromaTokens(spans)...)); err != nil {
		return fmt.Errorf("formatting terminal output: %w", err)
	}
	return nil
}

// WriteChromaHTML writes spans as a chroma <pre> block using CSS classes.
// Pair with WriteChromaCSS for the matching stylesheet.
func WriteChromaHTML(w io.Writer, spans []Span, style string, lineNumbers bool) error {
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(lineNumbers),
	)
	if err := formatter.Format(w, lookupStyle(style), chroma.Literator(ChromaTokens(spans)...)); err != nil {
		return fmt.Errorf("formatting HTML output: %w", err)
	}
	return nil
}

// WriteChromaCSS writes the stylesheet for WriteChromaHTML output.
func WriteChromaCSS(w io.Writer, style string) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, lookupStyle(style)); err != nil {
		return fmt.Errorf("writing chroma CSS: %w", err)
	}
	return nil
}
