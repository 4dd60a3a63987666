package xmlview

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("viewer pool is closed")

// ViewerPool hands out Viewers, each with its own browser, so that PDF
// exports run in parallel. Viewers are created on first demand.
type ViewerPool struct {
	size    int
	opts    []Option
	viewers []*Viewer
	sem     chan *Viewer
	mu      sync.Mutex
	created int
	closed  bool
}

// NewViewerPool creates a pool of up to n Viewers built with opts.
func NewViewerPool(n int, opts ...Option) *ViewerPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ViewerPool{
		size:    n,
		opts:    opts,
		viewers: make([]*Viewer, 0, n),
		sem:     make(chan *Viewer, n),
	}
}

// Acquire returns an idle Viewer, creating one while under capacity, and
// blocks otherwise.
func (p *ViewerPool) Acquire() (*Viewer, error) {
	select {
	case v, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return v, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		v, err := NewViewer(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, errors.Join(ErrPoolClosed, v.Close())
		}
		p.viewers = append(p.viewers, v)
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	v, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return v, nil
}

// Release returns v to the pool. The channel holds every created Viewer,
// so the send under the lock never blocks.
func (p *ViewerPool) Release(v *Viewer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- v
}

// Close closes every Viewer the pool created.
func (p *ViewerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	viewers := p.viewers
	p.mu.Unlock()

	var errs []error
	for _, v := range viewers {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ViewerPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, else half of GOMAXPROCS
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
