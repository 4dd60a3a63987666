package preview

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func render(t *testing.T, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRender(t *testing.T) {
	t.Parallel()

	out := render(t, Page{
		Title: "report.pdf",
		Header: Header{
			Filename:  "report.pdf",
			CreatedAt: time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC),
			Pages:     3,
			PDFLink:   "https://files.example.com/report.pdf",
			Size:      2048,
		},
		DateFormat:  "iso",
		Stylesheets: []string{"body{margin:0}"},
		Views: []View{
			{ID: "code", Title: "Code", Body: CodeBlock(`<span class="xml-tag-name">a</span>`)},
			{ID: "tree", Title: "Structure", Empty: "tree unavailable"},
		},
	})

	for _, want := range []string{
		"<!doctype html>",
		"<title>report.pdf</title>",
		"<style>body{margin:0}</style>",
		`<header class="record"><h1>report.pdf</h1>`,
		"2024-03-05",
		"PDF 3 pages",
		"XML 2.0 KB",
		`href="https://files.example.com/report.pdf"`,
		`<nav class="viewer-tabs">`,
		`href="#view-tree"`,
		`<section class="view" id="view-code"><h2>Code</h2>`,
		`<pre class="xml-code"><code><span class="xml-tag-name">a</span></code></pre>`,
		`<div class="empty-state"><p>tree unavailable</p></div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_HeaderOmissions(t *testing.T) {
	t.Parallel()

	out := render(t, Page{
		Header: Header{PDFLink: "javascript:alert(1)"},
		Views:  []View{{ID: "code", Title: "Code", Empty: NoXMLMessage}},
	})

	if !strings.Contains(out, "<h1>Untitled</h1>") {
		t.Error("missing filename placeholder")
	}
	for _, absent := range []string{"javascript:", `class="created"`, `class="pages"`, "viewer-tabs"} {
		if strings.Contains(out, absent) {
			t.Errorf("output contains %q:\n%s", absent, out)
		}
	}
	if !strings.Contains(out, NoXMLMessage) {
		t.Error("missing empty state")
	}
}

func TestIsWebLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		link string
		want bool
	}{
		{"https://files.example.com/report.pdf", true},
		{"http://localhost:9000/q1.pdf", true},
		{"", false},
		{"/uploads/report.pdf", false},
		{"javascript:alert(1)", false},
		{"ftp://files.example.com/report.pdf", false},
		{"HTTPS://files.example.com/report.pdf", false},
	}
	for _, tt := range tests {
		if got := isWebLink(tt.link); got != tt.want {
			t.Errorf("isWebLink(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

func TestRender_EscapesText(t *testing.T) {
	t.Parallel()

	out := render(t, Page{
		Title:  "<b>",
		Header: Header{Filename: `a<script>"`},
		Views:  []View{{ID: "doc", Title: "Doc", Body: h.P(g.Text("x & y"))}},
	})
	if strings.Contains(out, "<script>") || strings.Contains(out, "<title><b>") {
		t.Errorf("unescaped text in output:\n%s", out)
	}
	if !strings.Contains(out, "x &amp; y") {
		t.Error("view body not rendered")
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "0 pages"},
		{1, "1 page"},
		{2, "2 pages"},
	}
	for _, tt := range tests {
		if got := PageCount(tt.n); got != tt.want {
			t.Errorf("PageCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5*(1<<20) + (1 << 19), "5.5 MB"},
	}
	for _, tt := range tests {
		if got := FileSize(tt.n); got != tt.want {
			t.Errorf("FileSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.January, 9, 8, 30, 0, 0, time.UTC)
	if got := FormatDate(ts, "iso"); got != "2024-01-09" {
		t.Errorf("FormatDate(iso) = %q", got)
	}
	if got, want := FormatDate(ts, "[unclosed"), FormatDate(ts, ""); got != want {
		t.Errorf("invalid format gave %q, want default %q", got, want)
	}
	if got := FormatDate(ts, ""); got != "January 9, 2024 at 08:30 AM" {
		t.Errorf("FormatDate(default) = %q", got)
	}
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	msg := Unavailable("structure", errors.New("unbalanced tags"))
	if !strings.Contains(msg, "structure view is unavailable: unbalanced tags") {
		t.Errorf("Unavailable() = %q", msg)
	}
}
