package main

import (
	"context"
	"io"
	"os"
	"time"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/server"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now       func() time.Time
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clipboard xmlview.Clipboard

	// IsTerminal reports whether Stdout is a terminal, for --color=auto.
	IsTerminal func() bool
	// NewPool creates the exporter pool used by export and serve.
	NewPool func(size int, opts ...xmlview.Option) Pool
	// Serve runs the preview server until ctx is done.
	Serve func(ctx context.Context, srv *server.Server) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Clipboard:  xmlview.SystemClipboard{},
		IsTerminal: func() bool { return isCharDevice(os.Stdout) },
		NewPool: func(size int, opts ...xmlview.Option) Pool {
			return &poolAdapter{pool: xmlview.NewViewerPool(size, opts...)}
		},
		Serve: func(ctx context.Context, srv *server.Server) error {
			return srv.Run(ctx)
		},
	}
}

func isCharDevice(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
