package events

import (
	"context"
	"sync"
)

// Completion is a one-shot signal that a step has finished.
type Completion struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolve marks the completion as finished. Only the first call has an effect.
func (c *Completion) Resolve(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns the step's error once Done is closed, and nil before.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the step finishes or ctx is done.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
