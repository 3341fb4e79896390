package sceneshift

import (
	"context"
	"sync"
)

// Future reports the completion of a transition. A transition either runs its full pipeline
// and resolves the Future with a nil error, or stops at the failing step and resolves it with
// that step's error - there is no partial success.
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (future *Future) resolve(err error) {
	future.once.Do(func() {
		future.err = err
		close(future.done)
	})
}

// Done returns a channel that closes when the transition has finished (successfully or not).
func (future *Future) Done() <-chan struct{} {
	return future.done
}

// Err returns the error the transition resolved with, or nil on success. Its result is only
// meaningful once Done's channel has closed; before then it always returns nil.
func (future *Future) Err() error {
	select {
	case <-future.done:
		return future.err
	default:
		return nil
	}
}

// Wait blocks until the transition finishes and returns its error, or until ctx is done and
// returns ctx's error. Note that giving up on Wait doesn't stop the transition - there is no
// way to abort one in flight.
func (future *Future) Wait(ctx context.Context) error {
	select {
	case <-future.done:
		return future.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
