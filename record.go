package xmlview

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cdileep23/go-xmlview/internal/dateutil"
	"github.com/cdileep23/go-xmlview/internal/fileutil"
)

// MaxRecordSize caps the JSON accepted by DecodeRecord.
const MaxRecordSize = 32 << 20

// DefaultBaseName names downloads of records without a filename.
const DefaultBaseName = "document"

// Record is one conversion as served by the upstream API. Only XMLContent
// matters to the views; the rest feeds the preview header.
type Record struct {
	ID               string `json:"_id,omitempty"`
	OriginalFilename string `json:"originalFilename"`
	XMLContent       string `json:"xmlContent"`
	PDFLink          string `json:"pdfLink,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	PDFPages         int    `json:"pdfPages,omitempty"`
}

// RecordFromXML wraps a local XML file as a Record.
func RecordFromXML(filename, content string) Record {
	return Record{OriginalFilename: filename, XMLContent: content}
}

// DecodeRecord reads one JSON record. Unknown fields are ignored. The
// record is not validated: an empty xmlContent is a displayable state.
func DecodeRecord(r io.Reader) (Record, error) {
	var rec Record
	dec := json.NewDecoder(io.LimitReader(r, MaxRecordSize))
	if err := dec.Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return rec, nil
}

// Validate requires XMLContent and nothing else.
func (r Record) Validate() error {
	if r.XMLContent == "" {
		return ErrMissingXMLContent
	}
	return nil
}

// Created returns when the record was created: CreatedAt if it parses,
// otherwise the timestamp embedded in an ObjectID-shaped ID.
func (r Record) Created() (time.Time, bool) {
	if r.CreatedAt != "" {
		if t, err := dateutil.ParseTimestamp(r.CreatedAt); err == nil {
			return t, true
		}
	}
	return dateutil.ObjectIDTime(r.ID)
}

// BaseName is OriginalFilename without directories or extension, or
// DefaultBaseName when that leaves nothing.
func (r Record) BaseName() string {
	if base := fileutil.BaseName(r.OriginalFilename); base != "" {
		return base
	}
	return DefaultBaseName
}
