package site

import (
	"context"
	"runtime"
	"sync"

	"github.com/alnah/go-docsite/internal/cards"
)

// ResolveWorkers determines how many pages render in parallel.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return max(runtime.GOMAXPROCS(0), 1)
}

// runBatch calls fn for every index in [0, n) on at most workers goroutines.
// fn must check ctx itself; runBatch always drains the job list.
func runBatch(workers, n int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int, n)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}

// CardRenderer writes one social card image.
type CardRenderer interface {
	Render(ctx context.Context, htmlContent, outPath string) error
}

// CardPool abstracts card renderer pooling for testability.
type CardPool interface {
	Acquire() CardRenderer
	Release(CardRenderer)
	Size() int
}

// browserPool adapts *cards.Pool to CardPool.
type browserPool struct {
	pool *cards.Pool
}

// NewCardPool wraps a browser-backed card pool.
func NewCardPool(p *cards.Pool) CardPool {
	return browserPool{pool: p}
}

func (b browserPool) Acquire() CardRenderer {
	if r := b.pool.Acquire(); r != nil {
		return r
	}
	return nil
}

func (b browserPool) Release(r CardRenderer) {
	if cr, ok := r.(*cards.Renderer); ok {
		b.pool.Release(cr)
	}
}

func (b browserPool) Size() int {
	return b.pool.Size()
}

// cardJob is one card to render.
type cardJob struct {
	page    int
	html    string
	outPath string
}

// runCardBatch renders card jobs concurrently using the pool.
// The returned slice holds one error (or nil) per job.
func runCardBatch(ctx context.Context, pool CardPool, jobs []cardJob) []error {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r := pool.Acquire()
			if r == nil {
				// Renderer creation failed, mark remaining jobs as failed
				for idx := range queue {
					errs[idx] = ErrCardInit
				}
				return
			}
			defer pool.Release(r)

			for idx := range queue {
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					continue
				}
				errs[idx] = r.Render(ctx, jobs[idx].html, jobs[idx].outPath)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return errs
}
