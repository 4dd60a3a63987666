package xmltree

import (
	"encoding/json"
	"errors"
)

// DefaultMaxDepth bounds Walk when the caller passes a non-positive limit.
const DefaultMaxDepth = 256

// SkipChildren is returned by a WalkFunc to skip the children of the element
// just visited. Walk itself never returns it.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node with its depth; the root is at depth 0.
type WalkFunc func(n Node, depth int) error

type frame struct {
	node  Node
	depth int
}

// Walk visits the tree in document order using an explicit stack, so the
// Go call stack stays flat whatever the nesting of the input. Reaching an
// element at depth maxDepth or beyond stops the walk with
// *MaxDepthExceededError. Any other error from fn stops the walk and is
// returned as is.
func Walk(root *Element, maxDepth int, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		el, isElement := f.node.(*Element)
		if isElement && f.depth >= maxDepth {
			return &MaxDepthExceededError{Limit: maxDepth, Name: el.Name}
		}

		err := fn(f.node, f.depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if !isElement {
			continue
		}
		for i := len(el.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: el.Children[i], depth: f.depth + 1})
		}
	}
	return nil
}

// CheckDepth reports *MaxDepthExceededError when root nests deeper than
// maxDepth.
func CheckDepth(root *Element, maxDepth int) error {
	return Walk(root, maxDepth, func(Node, int) error { return nil })
}

// TextContent concatenates all text in document order.
func TextContent(root *Element) string {
	var b []byte
	_ = Walk(root, int(^uint(0)>>1), func(n Node, _ int) error {
		if t, ok := n.(Text); ok {
			b = append(b, t.Data...)
		}
		return nil
	})
	return string(b)
}

type jsonAttr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonElement struct {
	Name       string     `json:"name"`
	Attributes []jsonAttr `json:"attributes"`
	Children   []any      `json:"children"`
}

type jsonText struct {
	Text string `json:"text"`
}

// MarshalJSON encodes the element as
// {"name", "attributes": [{"key","value"}], "children": [...]}, with text
// children as {"text": "..."}. Encoding recurses, so check the depth of
// untrusted trees first.
func (e *Element) MarshalJSON() ([]byte, error) {
	out := jsonElement{
		Name:       e.Name,
		Attributes: make([]jsonAttr, len(e.Attrs)),
		Children:   make([]any, len(e.Children)),
	}
	for i, a := range e.Attrs {
		out.Attributes[i] = jsonAttr(a)
	}
	for i, c := range e.Children {
		switch c := c.(type) {
		case *Element:
			out.Children[i] = c
		case Text:
			out.Children[i] = jsonText{Text: c.Data}
		}
	}
	return json.Marshal(out)
}
