package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the eventual outcome of an asynchronous computation.
// Any number of goroutines may Await the same Future; all of them observe
// the same result.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the computation completes and returns its outcome.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for completion up to the given duration.
// If the timeout elapses first, ErrTimeout is returned and the underlying
// computation keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Run starts fn in its own goroutine and returns a Future for its outcome.
// If ctx is already cancelled the Future completes immediately with the
// context error and fn is never invoked.
func Run[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.once.Do(func() { f.err = ctx.Err() })
			return
		default:
		}

		res, err := fn(ctx)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}
