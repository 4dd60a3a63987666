//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
)

func generateReport(pages int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><document>`)
	for i := 1; i <= pages; i++ {
		fmt.Fprintf(&b, `<page number="%d"><section title="Section %d">`, i, i)
		b.WriteString(`<!-- generated --><paragraph>Lorem &amp; ipsum dolor sit amet.</paragraph>`)
		b.WriteString(`<table name="t"><header><cell>a</cell><cell>b</cell></header>`)
		for r := 0; r < 10; r++ {
			fmt.Fprintf(&b, `<row><cell>%d</cell><cell>x</cell></row>`, r)
		}
		b.WriteString(`</table></section></page>`)
	}
	b.WriteString(`</document>`)
	return b.String()
}

var benchSizes = []struct {
	name  string
	pages int
}{
	{"small", 1},
	{"medium", 20},
	{"large", 200},
}

func BenchmarkFormat(b *testing.B) {
	for _, size := range benchSizes {
		input := generateReport(size.pages)
		b.Run(size.name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Format(input)
			}
		})
	}
}

func BenchmarkHighlight(b *testing.B) {
	for _, size := range benchSizes {
		input := Format(generateReport(size.pages))
		b.Run(size.name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = RenderHTML(Highlight(input))
			}
		})
	}
}

func BenchmarkWriteChromaHTML(b *testing.B) {
	spans := Highlight(Format(generateReport(20)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := WriteChromaHTML(io.Discard, spans, "", false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter()
	ctx := context.Background()
	markdown := strings.Repeat("## Page\n\n### Section\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n\n", 50) +
		FenceCode("xml", Format(generateReport(5)))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := converter.ToHTML(ctx, "bench", markdown); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInjectCSS(b *testing.B) {
	injector := &CSSInjection{}
	ctx := context.Background()
	html := "<html><head></head><body>" + strings.Repeat("<p>text</p>", 1000) + "</body></html>"
	css := strings.Repeat("body { margin: 0; }\n", 200)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = injector.InjectCSS(ctx, html, css)
	}
}
