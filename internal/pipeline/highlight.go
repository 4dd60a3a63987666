package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// Style classifies a highlighted span.
type Style string

// Span styles. StylePlain marks text outside any recognized construct.
const (
	StylePlain       Style = ""
	StyleComment     Style = "comment"
	StyleDeclaration Style = "declaration"
	StyleAttrName    Style = "attr-name"
	StyleAttrValue   Style = "attr-value"
	StyleTagDelim    Style = "tag-delim"
	StyleTagName     Style = "tag-name"
)

// Span is a run of escaped text sharing one style.
type Span struct {
	Text  string
	Style Style
}

var (
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	unescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`)
)

// Escape escapes &, <, > and " for display in markup.
func Escape(s string) string {
	return escaper.Replace(s)
}

// unescape reverses Escape.
func unescape(s string) string {
	return unescaper.Replace(s)
}

// Patterns run over escaped text, highest priority first. A match that
// overlaps text already claimed by an earlier pattern is discarded.
var (
	commentPattern     = regexp.MustCompile(`(?s)&lt;!--.*?--&gt;`)
	declarationPattern = regexp.MustCompile(`(?s)&lt;[?!].*?&gt;`)
	attributePattern   = regexp.MustCompile(`\s([A-Za-z_:][-\w:.]*)(=)(&quot;[^\n]*?&quot;|'[^'\n]*')`)
	tagPattern         = regexp.MustCompile(`(&lt;/?)([A-Za-z_:][-\w:.]*)|(/?&gt;)`)
)

// claim is a styled byte range of the escaped text.
type claim struct {
	start, end int
	style      Style
}

type classifier struct {
	claims []claim
	taken  []bool
}

func (c *classifier) free(start, end int) bool {
	for i := start; i < end; i++ {
		if c.taken[i] {
			return false
		}
	}
	return true
}

// take claims the sub-ranges given as index pairs of loc; pairs whose group
// did not participate (-1) or whose style is plain are skipped, but still
// reserved so later patterns cannot reuse them.
func (c *classifier) take(loc []int, styles ...Style) {
	for i := loc[0]; i < loc[1]; i++ {
		c.taken[i] = true
	}
	for g, style := range styles {
		start, end := loc[2+2*g], loc[3+2*g]
		if start < 0 || start == end || style == StylePlain {
			continue
		}
		c.claims = append(c.claims, claim{start: start, end: end, style: style})
	}
}

// Highlight escapes text and splits it into styled spans. The classification
// order is comments, declarations and processing instructions, attribute
// pairs, then tag delimiters and names; the first pattern to claim a byte
// wins. A ">" is a tag delimiter only when it closes a tag. Concatenating the span texts yields Escape(text) exactly, and no span
// boundary falls inside an escape sequence.
func Highlight(text string) []Span {
	escaped := Escape(text)
	if escaped == "" {
		return nil
	}
	c := &classifier{taken: make([]bool, len(escaped))}

	for _, loc := range commentPattern.FindAllStringIndex(escaped, -1) {
		if c.free(loc[0], loc[1]) {
			c.take([]int{loc[0], loc[1], loc[0], loc[1]}, StyleComment)
		}
	}
	for _, loc := range declarationPattern.FindAllStringIndex(escaped, -1) {
		if c.free(loc[0], loc[1]) {
			c.take([]int{loc[0], loc[1], loc[0], loc[1]}, StyleDeclaration)
		}
	}
	for _, loc := range attributePattern.FindAllStringSubmatchIndex(escaped, -1) {
		// Leave the leading whitespace unclaimed.
		if c.free(loc[2], loc[1]) {
			c.take(append([]int{loc[2], loc[1]}, loc[2:]...), StyleAttrName, StylePlain, StyleAttrValue)
		}
	}
	// A closing delimiter only counts after an unclosed tag start, so a bare
	// ">" in character data stays plain.
	inTag := false
	for _, loc := range tagPattern.FindAllStringSubmatchIndex(escaped, -1) {
		if !c.free(loc[0], loc[1]) {
			continue
		}
		opens := loc[2] >= 0
		if !opens && !inTag {
			continue
		}
		c.take(loc, StyleTagDelim, StyleTagName, StyleTagDelim)
		inTag = opens
	}

	return c.spans(escaped)
}

// spans fills the gaps between claims with plain spans.
func (c *classifier) spans(escaped string) []Span {
	sort.Slice(c.claims, func(i, j int) bool { return c.claims[i].start < c.claims[j].start })

	spans := make([]Span, 0, 2*len(c.claims)+1)
	pos := 0
	for _, cl := range c.claims {
		if cl.start > pos {
			spans = append(spans, Span{Text: escaped[pos:cl.start]})
		}
		spans = append(spans, Span{Text: escaped[cl.start:cl.end], Style: cl.style})
		pos = cl.end
	}
	if pos < len(escaped) {
		spans = append(spans, Span{Text: escaped[pos:]})
	}
	return spans
}

// Plain concatenates span texts: Plain(Highlight(x)) == Escape(x).
func Plain(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Text strips the styling and the escaping: Text(Highlight(x)) == x.
func Text(spans []Span) string {
	return unescape(Plain(spans))
}

// RenderHTML wraps styled spans in <span class="xml-STYLE"> elements. Span
// text is already escaped and is written as is.
func RenderHTML(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Style == StylePlain {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(`<span class="xml-`)
		b.WriteString(string(s.Style))
		b.WriteString(`">`)
		b.WriteString(s.Text)
		b.WriteString("</span>")
	}
	return b.String()
}
