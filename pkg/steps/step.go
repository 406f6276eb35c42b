package steps

import (
	"context"
	"fmt"
)

type StepID struct {
	Owner string
	Name  string
}

func (s StepID) String() string {
	if s.Owner == "" {
		return s.Name
	}
	return fmt.Sprintf("%s:%s", s.Owner, s.Name)
}

// Step is one unit of a sequential pipeline operating on shared state S.
type Step[S any] struct {
	ID StepID

	// Label is the human-readable progress text announced before Fn runs.
	Label string

	// Reversible reports whether rollback undoes this step's effect.
	Reversible bool

	Fn func(context.Context, S) error
}

func StepFunc[S any](id StepID, label string, fn func(context.Context, S) error) Step[S] {
	return Step[S]{
		ID:         id,
		Label:      label,
		Reversible: true,
		Fn:         fn,
	}
}

func (s Step[S]) WithLabel(label string) Step[S] {
	s.Label = label
	return s
}

func (s Step[S]) Irreversible() Step[S] {
	s.Reversible = false
	return s
}
