package controls

import (
	"context"
	"sync"
)

// Op tracks an asynchronous transport request such as play or fullscreen.
// It settles exactly once.
type Op struct {
	name string
	done chan struct{}
	once sync.Once
	err  error
}

func newOp(name string) *Op {
	return &Op{name: name, done: make(chan struct{})}
}

// settledOp returns an Op that has already finished with err.
func settledOp(name string, err error) *Op {
	op := newOp(name)
	op.settle(err)
	return op
}

func (o *Op) settle(err error) {
	o.once.Do(func() {
		o.err = err
		close(o.done)
	})
}

// Name returns the request the Op tracks.
func (o *Op) Name() string {
	return o.name
}

// Done is closed once the request settled.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Settled reports whether Done is closed.
func (o *Op) Settled() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Err returns the refusal, if any. It is only meaningful once settled.
func (o *Op) Err() error {
	if !o.Settled() {
		return nil
	}
	return o.err
}

// Wait blocks until the Op settles or ctx is done.
func (o *Op) Wait(ctx context.Context) error {
	select {
	case <-o.done:
		return o.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
