package cards

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

const (
	MinPoolSize = 1
	// MaxPoolSize bounds concurrent Chrome instances, each costing a few
	// hundred MB.
	MaxPoolSize = 8

	// cpuDivisor leaves cores for Chrome's own child processes.
	cpuDivisor = 2
)

// Pool hands out at most Size renderers at a time. Browsers start on
// first use of a slot, so a build with few cards never pays for the rest.
type Pool struct {
	timeout time.Duration
	slots   chan *Renderer // nil entries are slots without a browser yet

	mu     sync.Mutex
	all    []*Renderer
	closed bool

	newRenderer func(time.Duration) *Renderer
}

// NewPool returns a pool of n slots (at least one) whose renderers use
// timeout per capture.
func NewPool(n int, timeout time.Duration) *Pool {
	n = max(n, MinPoolSize)
	p := &Pool{
		timeout:     timeout,
		slots:       make(chan *Renderer, n),
		newRenderer: NewRenderer,
	}
	for range n {
		p.slots <- nil
	}
	return p
}

// Acquire blocks until a slot is free and returns its renderer, starting
// one when the slot is still empty.
func (p *Pool) Acquire() *Renderer {
	r := <-p.slots
	if r != nil {
		return r
	}
	r = p.newRenderer(p.timeout)
	p.mu.Lock()
	p.all = append(p.all, r)
	p.mu.Unlock()
	return r
}

// Release gives r's slot back. It is a no-op once the pool is closed.
func (p *Pool) Release(r *Renderer) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if !closed {
		// Never blocks: a slot only leaves the channel through Acquire.
		p.slots <- r
	}
}

// Close shuts down every browser the pool started. Calling it again is a
// no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	started := p.all
	p.all = nil
	p.mu.Unlock()

	errs := make([]error, 0, len(started))
	for _, r := range started {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// Size is the number of slots.
func (p *Pool) Size() int {
	return cap(p.slots)
}

// started reports how many renderers have been created.
func (p *Pool) started() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// ResolvePoolSize picks the pool size: build.workers when set, else half
// of GOMAXPROCS (container aware through automaxprocs), clamped to
// [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0) / cpuDivisor
	}
	return min(max(n, MinPoolSize), MaxPoolSize)
}
