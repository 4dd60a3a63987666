package pipeline

import (
	"strings"

	"github.com/cdileep23/go-xmlview/internal/xmlscan"
	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// DefaultIndent is the indentation unit used by Format.
const DefaultIndent = "  "

// DefaultMaxIndent caps the indent units written before a line, so output
// stays linear in the input however deep the nesting goes.
const DefaultMaxIndent = xmltree.DefaultMaxDepth

// Formatter re-indents XML text one node per line.
// The zero value indents with DefaultIndent up to DefaultMaxIndent levels.
type Formatter struct {
	Indent string

	// MaxIndent is the deepest level that is indented further. Lines nested
	// deeper share its indentation. Zero means DefaultMaxIndent.
	MaxIndent int
}

// Format re-indents xml with the default two-space indent.
func Format(xml string) string {
	return Formatter{}.Format(xml)
}

// Format re-emits xml as indented, normalized text. It never fails: stray
// close tags clamp the depth at zero and unterminated markup is kept as text.
//
// Rules:
//   - open tags start a line and increase the depth;
//   - close tags decrease the depth, then start a line;
//   - self-closing tags, comments and declarations take one line at the
//     current depth;
//   - an element holding nothing but one text run (or only whitespace) is
//     collapsed to one line, with the text kept verbatim;
//   - whitespace-only text is dropped, other text takes its own trimmed line.
//
// Depth is tracked exactly, but at most MaxIndent units are written per line.
// Every line ends in a newline. Formatting the output again yields the same
// output for balanced input.
func (f Formatter) Format(xml string) string {
	unit := f.Indent
	if unit == "" {
		unit = DefaultIndent
	}

	maxIndent := f.MaxIndent
	if maxIndent <= 0 {
		maxIndent = DefaultMaxIndent
	}

	nodes := xmlscan.Scan(xml)
	w := lineWriter{unit: unit, max: maxIndent}
	w.b.Grow(len(xml) + len(xml)/4)

	depth := 0
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		switch n.Kind {
		case xmlscan.KindOpenTag:
			if n.SelfClosing {
				w.line(depth, renderTag(n))
				continue
			}
			if text, next, ok := leafContent(nodes, i); ok {
				w.line(depth, renderTag(n)+text+"</"+n.Name+">")
				i = next
				continue
			}
			w.line(depth, renderTag(n))
			depth++

		case xmlscan.KindCloseTag:
			if depth > 0 {
				depth--
			}
			w.line(depth, "</"+n.Name+">")

		case xmlscan.KindText:
			if n.IsWhitespace() {
				continue
			}
			w.line(depth, strings.TrimSpace(n.Raw))

		case xmlscan.KindComment, xmlscan.KindProcInst:
			w.line(depth, n.Raw)
		}
	}
	return w.b.String()
}

// leafContent reports whether the open tag at nodes[i] is followed only by
// text and then its own close tag. It returns the text to inline (empty when
// the run is whitespace) and the index of the close tag.
func leafContent(nodes []xmlscan.Node, i int) (string, int, bool) {
	j := i + 1
	blank := true
	for j < len(nodes) && nodes[j].Kind == xmlscan.KindText {
		if !nodes[j].IsWhitespace() {
			blank = false
		}
		j++
	}
	if j >= len(nodes) || nodes[j].Kind != xmlscan.KindCloseTag || nodes[j].Name != nodes[i].Name {
		return "", 0, false
	}
	if blank {
		return "", j, true
	}
	return xmlscan.Join(nodes[i+1 : j]), j, true
}

// renderTag writes an open or self-closing tag with its attributes in source
// order.
func renderTag(n xmlscan.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(quoteAttr(a.Value))
	}
	if n.SelfClosing {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}

// quoteAttr quotes with double quotes unless the value contains one and no
// single quote.
func quoteAttr(v string) string {
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	return `"` + strings.ReplaceAll(v, `"`, "&quot;") + `"`
}

type lineWriter struct {
	b    strings.Builder
	unit string
	max  int
}

func (w *lineWriter) line(depth int, s string) {
	for range min(depth, w.max) {
		w.b.WriteString(w.unit)
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}
