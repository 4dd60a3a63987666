package xmlview

import (
	"bytes"
	"errors"
	"testing"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

// rawXML is deliberately untidy: copy and download must not touch it.
const rawXML = "<document>\r\n  <page number='1'>&amp; <b>x</b>\t</page>\n</document>"

func TestCopyToClipboard(t *testing.T) {
	t.Parallel()

	t.Run("copies raw content", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		if err := CopyToClipboard(cb, Record{XMLContent: rawXML}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cb.text != rawXML {
			t.Errorf("clipboard = %q, want %q", cb.text, rawXML)
		}
	})

	t.Run("empty record", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		if err := CopyToClipboard(cb, Record{}); !errors.Is(err, ErrMissingXMLContent) {
			t.Errorf("error = %v, want ErrMissingXMLContent", err)
		}
		if cb.text != "" {
			t.Error("clipboard written for an empty record")
		}
	})

	t.Run("clipboard failure", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{err: ErrClipboardUnavailable}
		if err := CopyToClipboard(cb, Record{XMLContent: rawXML}); !errors.Is(err, ErrClipboardUnavailable) {
			t.Errorf("error = %v, want ErrClipboardUnavailable", err)
		}
	})
}

func TestDownload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	name, err := Download(&buf, Record{OriginalFilename: "reports/q1.pdf", XMLContent: rawXML})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "q1.xml" {
		t.Errorf("filename = %q, want q1.xml", name)
	}
	if buf.String() != rawXML {
		t.Errorf("content = %q, want %q", buf.String(), rawXML)
	}
}

func TestDownload_EmptyRecord(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := Download(&buf, Record{OriginalFilename: "x.pdf"}); !errors.Is(err, ErrMissingXMLContent) {
		t.Errorf("error = %v, want ErrMissingXMLContent", err)
	}
	if buf.Len() != 0 {
		t.Error("wrote content for an empty record")
	}
}

func TestDownloadFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{filename: "invoice.pdf", want: "invoice.xml"},
		{filename: "", want: "document.xml"},
		{filename: `C:\scans\q1.report.pdf`, want: "q1.report.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			if got := DownloadFilename(Record{OriginalFilename: tt.filename}); got != tt.want {
				t.Errorf("DownloadFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
