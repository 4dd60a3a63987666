package main

import (
	"context"
	"fmt"

	xmlview "github.com/cdileep23/go-xmlview"
)

// Exporter is the part of a Viewer that batch export needs.
type Exporter interface {
	Open(rec xmlview.Record) *xmlview.Views
	ExportPDF(ctx context.Context, vs *xmlview.Views) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*xmlview.Viewer)(nil)

// Pool abstracts the viewer pool for testability.
type Pool interface {
	Acquire() (Exporter, error)
	Release(Exporter)
	Size() int
	Close() error
}

// poolAdapter exposes an *xmlview.ViewerPool as a Pool.
type poolAdapter struct {
	pool *xmlview.ViewerPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (Exporter, error) {
	v, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Release panics when e did not come from this pool's Acquire.
func (a *poolAdapter) Release(e Exporter) {
	v, ok := e.(*xmlview.Viewer)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	a.pool.Release(v)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
