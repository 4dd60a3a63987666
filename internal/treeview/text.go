package treeview

import (
	"bufio"
	"io"
	"strings"

	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// Outline markers.
const (
	markerExpanded  = "▾ "
	markerCollapsed = "▸ "
	markerLeaf      = "  "
	indentUnit      = "  "
)

type textFrame struct {
	node  xmltree.Node
	depth int
	close bool
}

// WriteText writes the tree as an indented outline:
//
//	▾ <document>
//	  ▸ <page number="1">
//	  </document>
//
// Collapsed elements show only their open tag. The depth is checked before
// anything is written, so an oversized tree produces no partial output.
func WriteText(w io.Writer, root *xmltree.Element, exp *Expansion, maxDepth int) error {
	if err := xmltree.CheckDepth(root, maxDepth); err != nil {
		return err
	}
	if root == nil {
		return nil
	}

	bw := bufio.NewWriter(w)
	stack := []textFrame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		indent := strings.Repeat(indentUnit, f.depth)

		switch n := f.node.(type) {
		case xmltree.Text:
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" {
				continue
			}
			bw.WriteString(indent + markerLeaf + text + "\n")

		case *xmltree.Element:
			if f.close {
				bw.WriteString(indent + markerLeaf + "</" + n.Name + ">\n")
				continue
			}
			if len(n.Children) == 0 {
				bw.WriteString(indent + markerLeaf + openTag(n) + "\n")
				continue
			}
			if !exp.Expanded(n.Name) {
				bw.WriteString(indent + markerCollapsed + openTag(n) + "\n")
				continue
			}
			bw.WriteString(indent + markerExpanded + openTag(n) + "\n")
			stack = append(stack, textFrame{node: n, depth: f.depth, close: true})
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, textFrame{node: n.Children[i], depth: f.depth + 1})
			}
		}
	}
	return bw.Flush()
}

// openTag renders <name key="value" ...> for display. Values are shown as
// decoded text, not re-escaped.
func openTag(el *xmltree.Element) string {
	var b strings.Builder
	b.WriteString("<" + el.Name)
	for _, a := range el.Attrs {
		b.WriteString(" " + a.Key + `="` + a.Value + `"`)
	}
	b.WriteString(">")
	return b.String()
}
