package sigverify

import (
	"context"
	"sync"
)

// Result is a deferred boolean verification outcome. A synchronous Result
// is resolved before it is returned; an asynchronous one resolves later on
// the engine's completion goroutine. Callers must not assume either.
type Result struct {
	done chan struct{}
	once sync.Once
	ok   bool
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Resolved returns a Result that is already complete. Collaborators that
// compose verification (envelope checks, tests) use it to short-circuit.
func Resolved(ok bool, err error) *Result {
	r := newResult()
	r.resolve(ok, err)
	return r
}

func resolvedErr(err error) *Result { return Resolved(false, err) }

// resolve completes the Result exactly once; later calls are ignored.
func (r *Result) resolve(ok bool, err error) {
	r.once.Do(func() {
		r.ok = ok
		r.err = err
		close(r.done)
	})
}

// Done returns a channel closed when the Result is complete.
func (r *Result) Done() <-chan struct{} { return r.done }

// IsResolved reports completion without blocking.
func (r *Result) IsResolved() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Bool blocks until the Result is complete and returns the outcome.
func (r *Result) Bool() (bool, error) {
	<-r.done
	return r.ok, r.err
}

// Wait blocks until the Result is complete or ctx is done. A done ctx
// releases the waiter only; the dispatched verification runs to completion
// regardless.
func (r *Result) Wait(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		return r.ok, r.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
