// Package server exposes the viewer over HTTP with gin. Every endpoint
// except health takes one JSON record as its request body.
//
//	GET  /api/v1/health
//	POST /api/v1/format         formatted XML
//	POST /api/v1/highlight      highlighted spans (?source=raw for the input as written)
//	POST /api/v1/views          formatted XML, tree and document as JSON
//	POST /api/v1/preview        standalone HTML page (?expand=name, ?expandAll=true)
//	POST /api/v1/print          printable Markdown
//	POST /api/v1/download       the XML as an attachment
//	POST /api/v1/export/pdf     the printed document as PDF
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	xmlview "github.com/cdileep23/go-xmlview"
)

// Defaults for zero Config fields.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMaxBodyBytes    = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second

	readHeaderTimeout = 10 * time.Second
)

// Renderer computes the views of a record. *xmlview.Viewer implements it.
type Renderer interface {
	Open(rec xmlview.Record) *xmlview.Views
	PreviewHTML(vs *xmlview.Views, exp *xmlview.Expansion) ([]byte, error)
	PrintMarkdown(vs *xmlview.Views) (string, error)
}

// Exporter prints a record to PDF.
type Exporter interface {
	Export(ctx context.Context, rec xmlview.Record) ([]byte, error)
}

var _ Renderer = (*xmlview.Viewer)(nil)

// PoolExporter borrows a Viewer from Pool for each export.
type PoolExporter struct {
	Pool *xmlview.ViewerPool
}

// Export implements Exporter.
func (e PoolExporter) Export(ctx context.Context, rec xmlview.Record) ([]byte, error) {
	v, err := e.Pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer e.Pool.Release(v)
	return v.ExportPDF(ctx, v.Open(rec))
}

// Config configures a Server.
type Config struct {
	Addr            string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// Server serves one Renderer and an optional Exporter.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	renderer Renderer
	exporter Exporter
	router   *gin.Engine
}

// New builds the router. A nil exporter disables PDF export.
func New(cfg Config, renderer Renderer, exporter Exporter) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{cfg: cfg, logger: logger, renderer: renderer, exporter: exporter}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server.start", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
