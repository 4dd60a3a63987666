// Package docview reads an element tree as a paginated report of the shape
//
//	document > page[number] > section[title] > (paragraph | table[name])
//
// and projects it into a read-only Document. The projection is best-effort:
// missing attributes become empty strings, missing children render empty, and
// unknown elements are skipped. It never fails and never modifies the tree.
package docview

import (
	"encoding/json"

	"github.com/cdileep23/go-xmlview/internal/xmltree"
)

// Element and attribute names of the expected document shape.
const (
	ElemPage      = "page"
	ElemSection   = "section"
	ElemParagraph = "paragraph"
	ElemTable     = "table"

	AttrNumber = "number"
	AttrTitle  = "title"
	AttrName   = "name"
)

// Document is the projected report.
type Document struct {
	Pages []Page `json:"pages"`
}

// Empty reports whether the document has no pages.
func (d Document) Empty() bool {
	return len(d.Pages) == 0
}

// Page is one page of the report.
type Page struct {
	Number   string    `json:"number"`
	Sections []Section `json:"sections"`
}

// Section is a titled run of blocks.
type Section struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Block is a *Paragraph or a *Table.
type Block interface {
	block()
}

// Paragraph is a block of prose.
type Paragraph struct {
	Text string `json:"text"`
}

// Table has one header row and any number of body rows. Rows may be ragged.
type Table struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

func (*Paragraph) block() {}
func (*Table) block()     {}

// MarshalJSON tags the block with "type": "paragraph".
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type plain Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{Type: ElemParagraph, plain: plain(*p)})
}

// MarshalJSON tags the block with "type": "table".
func (t *Table) MarshalJSON() ([]byte, error) {
	type plain Table
	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{Type: ElemTable, plain: plain(*t)})
}

// Render projects root. A nil root yields an empty Document.
//
// Children of the root other than page elements, and children of a page
// other than section elements, are skipped. Paragraph text is the
// concatenation of the paragraph's direct text children; nested markup is
// ignored. Header and body cells take the text of their first child.
func Render(root *xmltree.Element) Document {
	doc := Document{Pages: []Page{}}
	if root == nil {
		return doc
	}
	for _, pageEl := range root.Elements() {
		if pageEl.Name != ElemPage {
			continue
		}
		page := Page{Number: pageEl.Attr(AttrNumber), Sections: []Section{}}
		for _, sectionEl := range pageEl.Elements() {
			if sectionEl.Name != ElemSection {
				continue
			}
			page.Sections = append(page.Sections, renderSection(sectionEl))
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

func renderSection(el *xmltree.Element) Section {
	section := Section{Title: el.Attr(AttrTitle), Blocks: []Block{}}
	for _, child := range el.Elements() {
		switch child.Name {
		case ElemParagraph:
			section.Blocks = append(section.Blocks, &Paragraph{Text: child.DirectText()})
		case ElemTable:
			section.Blocks = append(section.Blocks, renderTable(child))
		}
	}
	return section
}

func renderTable(el *xmltree.Element) *Table {
	table := &Table{Name: el.Attr(AttrName), Header: []string{}, Rows: [][]string{}}
	rows := el.Elements()
	if len(rows) == 0 {
		return table
	}
	table.Header = cellTexts(rows[0])
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, cellTexts(row))
	}
	return table
}

func cellTexts(row *xmltree.Element) []string {
	cells := row.Elements()
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.FirstText()
	}
	return out
}

// Columns returns the width of the widest row, header included.
func (t *Table) Columns() int {
	n := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}
