package create

import (
	"context"
	"errors"
	"fmt"
)

// revert undoes what the pipeline did to the project directory. A directory
// created by the run is removed; in a pre-existing one only the top-level
// entries that were not there at the start are removed.
func revert(ctx context.Context, p *project) error {
	x := p.exec
	if !x.Recorded {
		return nil
	}

	if !x.DirExisted {
		p.logger.Debug("removing project directory", "path", p.opts.Path)
		return p.dir.RemoveAll("")
	}

	entries, err := p.dir.Entries()
	if err != nil {
		return fmt.Errorf("listing %s: %w", p.opts.Path, err)
	}

	p.logger.Debug("removing new entries", "path", p.opts.Path, "kept", x.Existing.Len())

	var errs []error
	for _, name := range entries {
		if x.Existing.Has(name) {
			continue
		}
		p.logger.Debug("removing entry", "name", name)
		if err := p.dir.RemoveAll(name); err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
