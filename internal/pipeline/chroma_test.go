package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

func TestChromaTokens(t *testing.T) {
	t.Parallel()

	got := ChromaTokens(Highlight(`<a k="v"/>`))
	want := []chroma.Token{
		{Type: chroma.Punctuation, Value: "<"},
		{Type: chroma.NameTag, Value: "a"},
		{Type: chroma.Text, Value: " "},
		{Type: chroma.NameAttribute, Value: "k"},
		{Type: chroma.Text, Value: "="},
		{Type: chroma.LiteralString, Value: `"v"`},
		{Type: chroma.Punctuation, Value: "/>"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWriteChromaHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteChromaHTML(&buf, Highlight("<a>1 &amp; 2</a>"), "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`class="chroma"`, "&lt;", "&amp;amp;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteChromaCSS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteChromaCSS(&buf, "github"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("CSS missing .chroma selector:\n%s", buf.String())
	}
}

func TestWriteTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteTerminal(&buf, Highlight("<a>x</a>"), "monokai"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("output has no ANSI escapes: %q", out)
	}
	if !strings.Contains(out, "x") {
		t.Errorf("output lost text: %q", out)
	}
}

func TestStyleExists(t *testing.T) {
	t.Parallel()

	if !StyleExists("monokai") {
		t.Error("StyleExists(monokai) = false, want true")
	}
	if StyleExists("no-such-style") {
		t.Error("StyleExists(no-such-style) = true, want false")
	}
}
