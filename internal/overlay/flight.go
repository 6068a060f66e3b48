package overlay

import (
	"context"
	"sync"
)

// Flight is an outstanding explanation request. Every caller interested
// in the same canonical term attaches to the same Flight and waits on
// Await; the request itself is issued once.
type Flight struct {
	key  string
	done chan struct{}
	once sync.Once

	explanation string
	err         error

	// waiters are session callbacks, touched only on the session loop.
	waiters []func(explanation string, err error)
}

func newFlight(key string) *Flight {
	return &Flight{key: key, done: make(chan struct{})}
}

// Key returns the canonical term the flight resolves.
func (f *Flight) Key() string { return f.key }

// Await blocks until the request settles or ctx is done.
func (f *Flight) Await(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.explanation, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// attach registers fn to run when the flight settles.
func (f *Flight) attach(fn func(explanation string, err error)) {
	f.waiters = append(f.waiters, fn)
}

// complete records the result, releases Await callers and runs attached
// waiters in order on the calling goroutine.
func (f *Flight) complete(explanation string, err error) {
	f.once.Do(func() {
		f.explanation, f.err = explanation, err
		close(f.done)
		waiters := f.waiters
		f.waiters = nil
		for _, fn := range waiters {
			fn(explanation, err)
		}
	})
}
