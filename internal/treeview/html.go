package treeview

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// HTML renders the tree as nested <details> elements, open where exp says
// so. Recursion is bounded by maxDepth, which is checked up front.
func HTML(root *xmltree.Element, exp *Expansion, maxDepth int) (g.Node, error) {
	if err := xmltree.CheckDepth(root, maxDepth); err != nil {
		return nil, err
	}
	if root == nil {
		return h.Div(h.Class("xml-structure-view")), nil
	}
	return h.Div(h.Class("xml-structure-view"), elementNode(root, exp, 0)), nil
}

func elementNode(el *xmltree.Element, exp *Expansion, depth int) g.Node {
	class := h.Class("xml-element depth-" + strconv.Itoa(depth))
	tag := h.Span(h.Class("xml-tag"),
		h.Span(h.Class("tag-name"), g.Text("<"+el.Name+">")),
		g.Map(el.Attrs, func(a xmltree.Attr) g.Node {
			return h.Span(h.Class("attribute"), g.Text(" "+a.Key+`="`+a.Value+`"`))
		}),
	)
	if len(el.Children) == 0 {
		return h.Div(class, tag)
	}

	open := exp.Expanded(el.Name)
	state := "collapsed"
	if open {
		state = "expanded"
	}
	children := make([]g.Node, 0, len(el.Children))
	for _, c := range el.Children {
		switch c := c.(type) {
		case *xmltree.Element:
			children = append(children, elementNode(c, exp, depth+1))
		case xmltree.Text:
			children = append(children, h.Div(h.Class("xml-text"), g.Text(c.Data)))
		}
	}
	return h.Details(class,
		g.Attr("data-name", el.Name),
		g.If(open, g.Attr("open")),
		h.Summary(tag),
		h.Div(h.Class("xml-content "+state),
			g.Group(children),
			h.Div(h.Class("xml-tag"), g.Text("</"+el.Name+">")),
		),
	)
}
