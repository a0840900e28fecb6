package engine

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

type task struct {
	op   Op
	done func(Outcome)
}

// Pool is an Engine backed by a fixed set of worker goroutines. Workers
// perform import-then-verify; completion callbacks are serialized through a
// single completion goroutine, so callbacks never run concurrently with one
// another.
type Pool struct {
	tasks       chan task
	completions chan func()
	workers     errgroup.Group
	compDone    chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool with the given number of workers (minimum 1).
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks:       make(chan task, 64),
		completions: make(chan func(), 64),
		compDone:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.workers.Go(func() error {
			for t := range p.tasks {
				out := run(t.op)
				done := t.done
				p.completions <- func() { done(out) }
			}
			return nil
		})
	}
	go func() {
		defer close(p.compDone)
		for fn := range p.completions {
			fn()
		}
	}()
	return p
}

// Submit queues one operation. done runs exactly once on the completion
// goroutine and must not block indefinitely, or it stalls every later
// completion. Submit after Close returns ErrClosed.
func (p *Pool) Submit(op Op, done func(Outcome)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.tasks <- task{op: op, done: done}
	return nil
}

// Close drains queued operations, runs their completions, and stops the
// pool. It is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	_ = p.workers.Wait()
	close(p.completions)
	<-p.compDone
	return nil
}
