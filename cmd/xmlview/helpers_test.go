package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/server"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - fakes for the injectable environment
// ---------------------------------------------------------------------------

const (
	noteXML   = `<note><to>Ann</to></note>`
	reportXML = `<document><page number="1"><section title="Summary"><paragraph>Revenue grew.</paragraph></section></page></document>`
)

// fakeClipboard records what was copied.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// fakeExporter returns a fixed PDF, or err.
type fakeExporter struct {
	pdf []byte
	err error

	mu      sync.Mutex
	records []xmlview.Record
}

func (e *fakeExporter) Open(rec xmlview.Record) *xmlview.Views {
	e.mu.Lock()
	e.records = append(e.records, rec)
	e.mu.Unlock()
	return &xmlview.Views{Record: rec}
}

func (e *fakeExporter) ExportPDF(_ context.Context, _ *xmlview.Views) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.pdf, nil
}

func (e *fakeExporter) Records() []xmlview.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]xmlview.Record(nil), e.records...)
}

// fakePool hands out one shared fakeExporter.
type fakePool struct {
	exporter   *fakeExporter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire() (Exporter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.exporter, nil
}

func (p *fakePool) Release(Exporter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// testEnv is an Environment with captured output and fakes.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	clipboard *fakeClipboard
	pool      *fakePool
	poolSize  int // size passed to NewPool
	served    *server.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		clipboard: &fakeClipboard{},
		pool:      &fakePool{exporter: &fakeExporter{pdf: []byte("%PDF-1.4 fake")}, size: 1},
	}
	te.Environment = &Environment{
		Now:        func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		Stdin:      strings.NewReader(""),
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Clipboard:  te.clipboard,
		IsTerminal: func() bool { return false },
		NewPool: func(size int, _ ...xmlview.Option) Pool {
			te.poolSize = size
			te.pool.size = size
			return te.pool
		},
		Serve: func(_ context.Context, srv *server.Server) error {
			te.served = srv
			return nil
		},
	}
	return te
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

var errFake = errors.New("fake failure")
