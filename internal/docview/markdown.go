package docview

import (
	"bufio"
	"io"
	"strings"
)

// markdownEscaper backslash-escapes the punctuation that could turn prose
// into markup. Raw HTML is escaped too, since the print renderer drops it.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"~", `\~`,
	"&", `\&`,
	"!", `\!`,
)

// EscapeMarkdown flattens s to one line and escapes it so that it renders as
// the same literal text.
func EscapeMarkdown(s string) string {
	s = markdownEscaper.Replace(strings.Join(strings.Fields(s), " "))
	if s == "" {
		return s
	}
	// A leading list or block marker.
	switch s[0] {
	case '-', '+', '=':
		return `\` + s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}

// WriteMarkdown writes doc as GitHub-flavored Markdown: pages as level-2
// headings, sections as level-3, table names as level-4, tables as pipe
// tables. Ragged rows are padded to the widest row.
func WriteMarkdown(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	for i, page := range doc.Pages {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString("## Page " + EscapeMarkdown(page.Number) + "\n")
		for _, section := range page.Sections {
			bw.WriteString("\n### " + EscapeMarkdown(section.Title) + "\n")
			for _, b := range section.Blocks {
				switch b := b.(type) {
				case *Paragraph:
					if text := EscapeMarkdown(b.Text); text != "" {
						bw.WriteString("\n" + text + "\n")
					}
				case *Table:
					writeMarkdownTable(bw, b)
				}
			}
		}
	}
	return bw.Flush()
}

func writeMarkdownTable(bw *bufio.Writer, t *Table) {
	if t.Name != "" {
		bw.WriteString("\n#### " + EscapeMarkdown(t.Name) + "\n")
	}
	cols := t.Columns()
	if cols == 0 {
		return
	}
	bw.WriteString("\n")
	writeMarkdownRow(bw, t.Header, cols)
	bw.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, r := range t.Rows {
		writeMarkdownRow(bw, r, cols)
	}
}

func writeMarkdownRow(bw *bufio.Writer, cells []string, cols int) {
	bw.WriteString("|")
	for i := 0; i < cols; i++ {
		cell := ""
		if i < len(cells) {
			cell = EscapeMarkdown(cells[i])
		}
		bw.WriteString(" " + cell + " |")
	}
	bw.WriteString("\n")
}
