package steps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/olimci/frontity-create/pkg/utils/set"
)

// Pipeline runs its steps strictly in order against a shared state. When a
// step fails, or the context is cancelled between steps, the rollback
// function runs once before the error is returned.
type Pipeline[S any] struct {
	steps    []Step[S]
	rollback func(context.Context, S) error
	logger   *log.Logger
}

type PipelineOption[S any] func(*Pipeline[S])

func WithRollback[S any](fn func(context.Context, S) error) PipelineOption[S] {
	return func(p *Pipeline[S]) {
		p.rollback = fn
	}
}

func WithLogger[S any](logger *log.Logger) PipelineOption[S] {
	return func(p *Pipeline[S]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func New[S any](steps []Step[S], opts ...PipelineOption[S]) (*Pipeline[S], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	seen := set.New[StepID]()
	for _, step := range steps {
		if seen.Has(step.ID) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, step.ID)
		}
		seen.Add(step.ID)
	}

	p := &Pipeline[S]{
		steps:  steps,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Steps returns the IDs of the pipeline's steps in execution order.
func (p *Pipeline[S]) Steps() []StepID {
	ids := make([]StepID, len(p.steps))
	for i, step := range p.steps {
		ids[i] = step.ID
	}
	return ids
}

// Run executes the pipeline on the calling goroutine. Each step is announced
// to handler with a Message event before it runs; a failure is announced with
// a single Error event after rollback.
func (p *Pipeline[S]) Run(ctx context.Context, state S, handler events.Handler) error {
	if handler == nil {
		handler = events.NewNoopHandler()
	}

	var (
		once      sync.Once
		committed []StepID
	)
	revert := func() error {
		var err error
		once.Do(func() {
			if p.rollback == nil {
				return
			}
			p.logger.Debug("rolling back", "kept", committed)
			// rollback must finish even when ctx is what interrupted us
			if rbErr := p.rollback(context.WithoutCancel(ctx), state); rbErr != nil {
				err = &RollbackError{Err: rbErr}
			}
		})
		return err
	}

	fail := func(err error) error {
		if rbErr := revert(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		handler.Handle(events.Event{
			Type:    events.Error,
			Message: err.Error(),
			Error:   err,
		})
		return err
	}

	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			// the step was never announced, so no step is blamed
			return fail(fmt.Errorf("interrupted after %d of %d steps: %w", i, len(p.steps), err))
		}

		completion := events.NewCompletion()
		handler.Handle(events.Event{
			Type:       events.Message,
			Step:       step.ID.String(),
			Message:    step.Label,
			Completion: completion,
		})

		start := time.Now()
		err := step.Fn(ctx, state)
		completion.Resolve(err)
		p.logger.Debug("step done", "step", step.ID, "took", time.Since(start).Truncate(time.Millisecond), "err", err)

		if err != nil {
			return fail(&StepExecutionError{Step: step.ID, Index: i, Err: err})
		}
		if !step.Reversible {
			committed = append(committed, step.ID)
		}
	}

	return nil
}

// Start runs the pipeline on a new goroutine and returns a handle to it.
func (p *Pipeline[S]) Start(ctx context.Context, state S, handlers ...events.Handler) *Task {
	task := NewTask(handlers...)
	go func() {
		task.finish(p.Run(ctx, state, task.broker))
	}()
	return task
}
