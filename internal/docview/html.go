package docview

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// HTML renders doc with the class names the preview stylesheet targets.
func HTML(doc Document) g.Node {
	return h.Div(h.Class("formatted-document"),
		g.Map(doc.Pages, pageNode),
	)
}

func pageNode(p Page) g.Node {
	return h.Div(h.Class("page"),
		h.H3(g.Text("Page "+p.Number)),
		g.Map(p.Sections, sectionNode),
	)
}

func sectionNode(s Section) g.Node {
	return h.Div(h.Class("section"),
		h.H4(g.Text(s.Title)),
		g.Map(s.Blocks, blockNode),
	)
}

func blockNode(b Block) g.Node {
	switch b := b.(type) {
	case *Paragraph:
		return h.P(g.Text(b.Text))
	case *Table:
		return tableNode(b)
	}
	return nil
}

func tableNode(t *Table) g.Node {
	cols := t.Columns()
	return h.Div(h.Class("table-container"),
		g.If(t.Name != "", h.H5(g.Text(t.Name))),
		h.Table(
			h.THead(h.Tr(cellNodes(t.Header, cols, h.Th)...)),
			h.TBody(g.Map(t.Rows, func(r []string) g.Node {
				return h.Tr(cellNodes(r, cols, h.Td)...)
			})),
		),
	)
}

// cellNodes pads ragged rows to cols cells.
func cellNodes(cells []string, cols int, cell func(...g.Node) g.Node) []g.Node {
	out := make([]g.Node, cols)
	for i := range out {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		out[i] = cell(g.Text(text))
	}
	return out
}
