package jobs

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many jobs execute at once. Submissions never block the
// caller; queued work waits for a slot on its own goroutine.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewPool returns a pool with size slots (minimum 1).
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Go schedules fn. If ctx ends before a slot frees up, onAbort runs instead.
func (p *Pool) Go(ctx context.Context, fn func(), onAbort func(error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			if onAbort != nil {
				onAbort(err)
			}
			return
		}
		defer p.sem.Release(1)
		fn()
	}()
}

// Wait blocks until every scheduled function has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}
