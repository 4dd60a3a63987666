// Package xmltree builds an element tree from XML text on top of the
// lexical scanner.
//
// The builder is permissive: it checks tag balance and nothing else. Comments,
// processing instructions and whitespace-only text are not part of the tree.
package xmltree

import (
	"fmt"
	"strings"

	"github.com/cdileep23/go-xmlview/internal/xmlscan"
)

// Node is either *Element or Text.
type Node interface {
	node()
}

// Text is decoded character data.
type Text struct {
	Data string
}

func (Text) node() {}

// Attr is one attribute of an element.
type Attr struct {
	Key   string
	Value string
}

// Element is one XML element. Attribute keys are unique and keep the position
// of their first occurrence in the source.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (*Element) node() {}

// Attr returns the value of the attribute key, or "" when absent.
func (e *Element) Attr(key string) string {
	v, _ := e.LookupAttr(key)
	return v
}

// LookupAttr returns the value of the attribute key and whether it is set.
func (e *Element) LookupAttr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the child elements in order, skipping text.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// FirstText returns the data of the first child when it is text, or "".
func (e *Element) FirstText() string {
	if len(e.Children) == 0 {
		return ""
	}
	if t, ok := e.Children[0].(Text); ok {
		return t.Data
	}
	return ""
}

// DirectText concatenates the text children of e, ignoring nested elements.
func (e *Element) DirectText() string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			b.WriteString(t.Data)
		}
	}
	return b.String()
}

// Build parses xml into a tree rooted at the single top-level element.
//
// It fails with *UnbalancedTagsError when a close tag does not match the open
// element and with *UnexpectedEndOfInputError when elements are left open.
// Input without an element fails with ErrNoRootElement, and a second
// top-level element with ErrMultipleRoots. Text outside the root is ignored.
//
// Text and attribute values are decoded: the five predefined entities and
// numeric character references (&#65; and &#x41;) are replaced, unknown
// entities are kept verbatim and CDATA content is kept as written. Text data
// therefore equals the scanned text content only when the input has no
// references.
func Build(xml string) (*Element, error) {
	var (
		root  *Element
		stack []*Element
	)
	for _, n := range xmlscan.Scan(xml) {
		switch n.Kind {
		case xmlscan.KindOpenTag:
			el := &Element{Name: n.Name, Attrs: mergeAttrs(n.Attrs)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: <%s> at offset %d", ErrMultipleRoots, n.Name, n.Offset)
				}
				root = el
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, el)
			}
			if !n.SelfClosing {
				stack = append(stack, el)
			}

		case xmlscan.KindCloseTag:
			if len(stack) == 0 {
				return nil, &UnbalancedTagsError{Found: n.Name, Offset: n.Offset}
			}
			top := stack[len(stack)-1]
			if top.Name != n.Name {
				return nil, &UnbalancedTagsError{Expected: top.Name, Found: n.Name, Offset: n.Offset}
			}
			stack = stack[:len(stack)-1]

		case xmlscan.KindText:
			if len(stack) == 0 || n.IsWhitespace() {
				continue
			}
			data := n.Content
			if !n.IsCDATA() {
				data = xmlscan.Unescape(data)
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, Text{Data: data})
		}
	}

	if len(stack) > 0 {
		open := make([]string, len(stack))
		for i, el := range stack {
			open[i] = el.Name
		}
		return nil, &UnexpectedEndOfInputError{Open: open}
	}
	if root == nil {
		return nil, ErrNoRootElement
	}
	return root, nil
}

// mergeAttrs decodes attribute values and folds repeated keys: the first
// occurrence keeps its position, the last value wins.
func mergeAttrs(raw []xmlscan.Attr) []Attr {
	if len(raw) == 0 {
		return nil
	}
	attrs := make([]Attr, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, a := range raw {
		value := xmlscan.Unescape(a.Value)
		if i, ok := index[a.Key]; ok {
			attrs[i].Value = value
			continue
		}
		index[a.Key] = len(attrs)
		attrs = append(attrs, Attr{Key: a.Key, Value: value})
	}
	return attrs
}
