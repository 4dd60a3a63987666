package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/server"
)

// runServe runs the HTTP preview server until interrupted.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseFlags("serve", args, env)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrTooManyArgs)
	}

	workers := f.export.workers
	if !f.changed("workers") {
		workers = loadEnvConfig().Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}
	opts, err := viewerOptions(cfg)
	if err != nil {
		return err
	}

	renderer, err := xmlview.NewViewer(opts...)
	if err != nil {
		return err
	}
	defer renderer.Close()

	var exporter server.Exporter
	if !f.serve.noPDF {
		pool := xmlview.NewViewerPool(xmlview.ResolvePoolSize(workers), opts...)
		defer pool.Close()
		exporter = server.PoolExporter{Pool: pool}
	}

	level := slog.LevelInfo
	if f.common.verbose {
		level = slog.LevelDebug
	}
	if f.common.quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(env.Stderr, &slog.HandlerOptions{Level: level}))

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Logger:       logger,
	}, renderer, exporter)

	return env.Serve(ctx, srv)
}
