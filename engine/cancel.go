package engine

import (
	"context"
	"sync/atomic"
)

// Token is a one-shot cancellation signal shared between the caller and a
// running search. The search polls it once per node.
type Token struct {
	stop atomic.Bool
}

func (t *Token) Cancel() { t.stop.Store(true) }

func (t *Token) Cancelled() bool { return t.stop.Load() }

// Reset re-arms the token once the cancelled search has unwound.
func (t *Token) Reset() { t.stop.Store(false) }

// watch cancels t when ctx is done. The returned func releases the watcher.
func (t *Token) watch(ctx context.Context) (release func()) {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			t.Cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
