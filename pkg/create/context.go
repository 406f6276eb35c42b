package create

import "github.com/olimci/frontity-create/pkg/utils/set"

// ExecutionContext is the state rollback relies on. It is filled in once by
// the first step.
type ExecutionContext struct {
	// Recorded is false until the project directory has been ensured.
	Recorded bool
	// DirExisted reports whether the project directory was there before.
	DirExisted bool
	// Existing holds the top-level entries of a pre-existing directory.
	Existing *set.Set[string]
}

func (e *ExecutionContext) record(existed bool, entries []string) {
	e.Recorded = true
	e.DirExisted = existed
	e.Existing = set.FromSlice(entries)
}
