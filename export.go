package xmlview

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes to the desktop clipboard through pbcopy, clip,
// wl-copy, xclip or xsel, whichever exists.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

// WriteText replaces the clipboard contents with text.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

// CopyToClipboard copies the record's XML exactly as received. Neither
// formatting nor escaping is applied.
func CopyToClipboard(cb Clipboard, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	return cb.WriteText(rec.XMLContent)
}

// Download writes the record's XML byte for byte to w and returns the
// filename to save it under.
func Download(w io.Writer, rec Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(w, rec.XMLContent); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	return DownloadFilename(rec), nil
}

// DownloadFilename is the record's base name with an .xml extension, for
// example "invoice.pdf" becomes "invoice.xml".
func DownloadFilename(rec Record) string {
	return rec.BaseName() + ".xml"
}
