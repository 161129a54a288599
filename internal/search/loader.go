package search

import (
	"context"
	"sync"
)

// Loader runs one request at a time. Starting a request cancels the
// previous one, and only the newest request's result is delivered.
type Loader[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Load starts fn in a goroutine with a context derived from ctx. deliver is
// called with fn's result unless a newer Load or Cancel happened first.
// Load returns immediately. deliver runs on the request goroutine and must
// not call Load or Cancel.
func (l *Loader[T]) Load(ctx context.Context, fn func(context.Context) (T, error), deliver func(T, error)) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer cancel()
		v, err := fn(reqCtx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if seq != l.seq {
			return
		}
		l.cancel = nil
		deliver(v, err)
	}()
}

// Cancel cancels the pending request; its result is not delivered.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Wait blocks until every started request has returned.
func (l *Loader[T]) Wait() {
	l.wg.Wait()
}
