// Package xmlscan splits raw XML text into a flat, lossless stream of
// lexical nodes without building a tree.
//
// The scanner never fails. Malformed input yields nodes with unexpected
// shapes (an unterminated tag becomes text, a stray close tag stays a close
// tag) and consumers decide what to do with them. Concatenating the Raw
// field of every node reproduces the input byte-for-byte.
package xmlscan

import "strings"

// Kind identifies the lexical class of a Node.
type Kind int

const (
	KindText Kind = iota
	KindOpenTag
	KindCloseTag
	KindComment
	KindProcInst
)

var kindNames = [...]string{
	KindText:     "text",
	KindOpenTag:  "open",
	KindCloseTag: "close",
	KindComment:  "comment",
	KindProcInst: "procinst",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Attr is one attribute in source order. Boolean-style attributes without a
// value have an empty Value.
type Attr struct {
	Key   string
	Value string
}

// Node is one lexical unit of the input.
type Node struct {
	Kind Kind

	// Name is set for open and close tags.
	Name string

	// Attrs holds open-tag attributes in source order, duplicates included.
	Attrs []Attr

	// SelfClosing marks an open tag written as <name/>.
	SelfClosing bool

	// Content is the character data of text nodes (inner data for CDATA
	// sections), the body of comments, and the body of processing
	// instructions and declarations. Entities are not decoded.
	Content string

	// Raw is the literal source span of the node.
	Raw string

	// Offset is the byte offset of Raw in the input.
	Offset int
}

// IsWhitespace reports whether n is a text node whose source span holds only
// whitespace (or nothing at all). CDATA sections never count as whitespace.
func (n Node) IsWhitespace() bool {
	return n.Kind == KindText && strings.TrimSpace(n.Raw) == ""
}

// IsCDATA reports whether n is a text node written as a CDATA section, whose
// Content must not be entity-decoded.
func (n Node) IsCDATA() bool {
	return n.Kind == KindText && strings.HasPrefix(n.Raw, "<![CDATA[")
}

// Scan splits xml into lexical nodes.
func Scan(xml string) []Node {
	s := scanner{src: xml}
	s.run()
	return s.nodes
}

// Join concatenates the literal spans of nodes.
func Join(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Raw)
	}
	return b.String()
}

type scanner struct {
	src   string
	pos   int
	nodes []Node

	// afterMarkup is true when the previous node was markup, so that the
	// gap up to the next markup node is recorded even when empty.
	afterMarkup bool
}

func (s *scanner) run() {
	textStart := 0
	for s.pos < len(s.src) {
		i := strings.IndexByte(s.src[s.pos:], '<')
		if i < 0 {
			break
		}
		start := s.pos + i
		end, ok := s.markupEnd(start)
		if !ok {
			// Not markup: keep the '<' as text and move on.
			s.pos = start + 1
			continue
		}
		s.emitText(textStart, start, true)
		s.emitMarkup(start, end)
		s.pos = end
		textStart = end
	}
	s.emitText(textStart, len(s.src), false)
}

// emitText records src[from:to] as text. Empty runs are kept only between two
// markup nodes.
func (s *scanner) emitText(from, to int, beforeMarkup bool) {
	if from == to && !(s.afterMarkup && beforeMarkup) {
		return
	}
	raw := s.src[from:to]
	s.nodes = append(s.nodes, Node{Kind: KindText, Content: raw, Raw: raw, Offset: from})
	s.afterMarkup = false
}

// markupEnd returns the end offset (exclusive) of the markup starting at
// start, or false when the '<' does not open markup.
func (s *scanner) markupEnd(start int) (int, bool) {
	rest := s.src[start:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return closeAfter(s.src, start+4, "-->")
	case strings.HasPrefix(rest, "<![CDATA["):
		return closeAfter(s.src, start+9, "]]>")
	case strings.HasPrefix(rest, "<?"):
		return closeAfter(s.src, start+2, "?>")
	case strings.HasPrefix(rest, "<!"):
		return closeAfter(s.src, start+2, ">")
	case strings.HasPrefix(rest, "</"):
		return closeAfter(s.src, start+2, ">")
	}
	if len(rest) < 2 || !isNameStart(rest[1]) {
		return 0, false
	}
	return tagEnd(s.src, start+1)
}

func closeAfter(src string, from int, delim string) (int, bool) {
	i := strings.Index(src[from:], delim)
	if i < 0 {
		return 0, false
	}
	return from + i + len(delim), true
}

// tagEnd finds the '>' closing an open tag, skipping quoted attribute values.
func tagEnd(src string, from int) (int, bool) {
	var quote byte
	for i := from; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1, true
		}
	}
	return 0, false
}

func (s *scanner) emitMarkup(start, end int) {
	raw := s.src[start:end]
	n := Node{Raw: raw, Offset: start}
	switch {
	case strings.HasPrefix(raw, "<!--"):
		n.Kind = KindComment
		n.Content = raw[4 : len(raw)-3]
	case strings.HasPrefix(raw, "<![CDATA["):
		n.Kind = KindText
		n.Content = raw[9 : len(raw)-3]
	case strings.HasPrefix(raw, "<?"):
		n.Kind = KindProcInst
		n.Content = raw[2 : len(raw)-2]
	case strings.HasPrefix(raw, "<!"):
		n.Kind = KindProcInst
		n.Content = raw[2 : len(raw)-1]
	case strings.HasPrefix(raw, "</"):
		n.Kind = KindCloseTag
		n.Name = strings.TrimSpace(raw[2 : len(raw)-1])
	default:
		n.Kind = KindOpenTag
		body := raw[1 : len(raw)-1]
		if strings.HasSuffix(body, "/") {
			n.SelfClosing = true
			body = body[:len(body)-1]
		}
		n.Name, n.Attrs = parseTagBody(body)
	}
	s.nodes = append(s.nodes, n)
	s.afterMarkup = true
}

// parseTagBody splits "name k="v" flag" into the element name and its
// attributes, left to right.
func parseTagBody(body string) (string, []Attr) {
	i := 0
	for i < len(body) && !isSpace(body[i]) {
		i++
	}
	name := body[:i]

	var attrs []Attr
	for {
		i = skipSpace(body, i)
		if i >= len(body) {
			return name, attrs
		}
		keyStart := i
		for i < len(body) && !isSpace(body[i]) && body[i] != '=' {
			i++
		}
		key := body[keyStart:i]

		j := skipSpace(body, i)
		if j >= len(body) || body[j] != '=' {
			attrs = append(attrs, Attr{Key: key})
			continue
		}
		j = skipSpace(body, j+1)

		var value string
		switch {
		case j >= len(body):
		case body[j] == '"' || body[j] == '\'':
			q := body[j]
			k := strings.IndexByte(body[j+1:], q)
			if k < 0 {
				value = body[j+1:]
				j = len(body)
			} else {
				value = body[j+1 : j+1+k]
				j += k + 2
			}
		default:
			k := j
			for k < len(body) && !isSpace(body[k]) {
				k++
			}
			value = body[j:k]
			j = k
		}
		if key != "" {
			attrs = append(attrs, Attr{Key: key, Value: value})
		}
		i = j
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameStart(c byte) bool {
	return c == '_' || c == ':' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
