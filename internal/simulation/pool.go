package simulation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// runFunc plays one encounter. It receives the pool context so a long run can
// notice that the simulation was abandoned.
type runFunc func(ctx context.Context) error

// runPool plays queued encounters on a fixed number of goroutines. The first
// run that fails cancels the pool, and every run still queued is dropped.
type runPool struct {
	workers int
	queue   chan runFunc
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	once     sync.Once
	firstErr error
}

// newRunPool sizes the pool to workers goroutines, or one per CPU when
// workers is not positive. The pool stops early when ctx is cancelled.
func newRunPool(ctx context.Context, workers int) *runPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &runPool{
		workers: workers,
		queue:   make(chan runFunc, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (p *runPool) start() {
	p.wg.Add(p.workers)
	for range p.workers {
		go p.worker()
	}
}

func (p *runPool) worker() {
	defer p.wg.Done()
	for run := range p.queue {
		if p.ctx.Err() != nil {
			continue
		}
		if err := run(p.ctx); err != nil {
			p.fail(err)
		}
	}
}

func (p *runPool) fail(err error) {
	p.once.Do(func() {
		p.firstErr = err
		p.cancel()
	})
}

// submit queues a run. It reports false once the pool is cancelled, after
// which further submits are pointless.
func (p *runPool) submit(run runFunc) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.queue <- run:
		return true
	}
}

// wait closes the queue and blocks until every worker has exited. It returns
// the first run error, or the reason the parent context ended the pool.
func (p *runPool) wait() error {
	close(p.queue)
	p.wg.Wait()
	defer p.cancel()

	if p.firstErr != nil {
		return p.firstErr
	}
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("simulation interrupted: %w", err)
	}
	return nil
}

// SafeCounter is a lock-free counter shared by workers
type SafeCounter struct {
	value atomic.Int64
}

func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}
