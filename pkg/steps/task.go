package steps

import (
	"context"

	"github.com/olimci/frontity-create/pkg/events"
)

// Task is the handle of a pipeline running in the background. It can be
// awaited for the final result and subscribed to for progress events.
type Task struct {
	broker *events.Broker
	done   chan struct{}
	err    error
}

func NewTask(handlers ...events.Handler) *Task {
	return &Task{
		broker: events.NewBroker(handlers...),
		done:   make(chan struct{}),
	}
}

// Failed returns a task that has already finished with err, after emitting
// err as an Error event.
func Failed(err error, handlers ...events.Handler) *Task {
	t := NewTask(handlers...)
	t.broker.Handle(events.Event{
		Type:    events.Error,
		Message: err.Error(),
		Error:   err,
	})
	t.finish(err)
	return t
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Subscribe registers h for progress events. Events emitted before the call
// are replayed to h first.
func (t *Task) Subscribe(h events.Handler) (unsubscribe func()) {
	return t.broker.Subscribe(h)
}

func (t *Task) Events() []events.Event {
	return t.broker.History()
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's error once Done is closed, and nil before.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// WaitContext blocks until the task finishes or ctx is done.
func (t *Task) WaitContext(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
