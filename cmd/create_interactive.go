package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/olimci/frontity-create/pkg/create"
)

var starterThemes = []string{
	"@frontity/mars-theme",
	"@frontity/twentytwenty-theme",
}

// promptCreate asks for whatever the flags and arguments left open.
func promptCreate(ctx context.Context, in *createInput) error {
	var fields []huh.Field

	if in.opts.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Enter a name for the project:").
			Placeholder("my-frontity-project").
			Validate(create.ValidateName).
			Value(&in.opts.Name))
	}

	if in.opts.Theme == "" {
		in.opts.Theme = in.cfg.Defaults.Theme

		options := make([]huh.Option[string], 0, len(starterThemes)+1)
		if !slices.Contains(starterThemes, in.opts.Theme) {
			options = append(options, huh.NewOption(in.opts.Theme+" (configured)", in.opts.Theme))
		}
		for _, theme := range starterThemes {
			label := theme
			if theme == starterThemes[0] {
				label += " (recommended)"
			}
			options = append(options, huh.NewOption(label, theme))
		}

		fields = append(fields, huh.NewSelect[string]().
			Title("Pick a starter theme to clone:").
			Options(options...).
			Value(&in.opts.Theme))
	}

	if in.opts.TypeScript == nil && !in.cfg.Defaults.TypeScript {
		in.opts.TypeScript = create.Bool(false)
		fields = append(fields, huh.NewConfirm().
			Title("Use TypeScript?").
			Value(in.opts.TypeScript))
	}

	if len(fields) == 0 {
		return nil
	}

	err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("prompt aborted: %w", context.Canceled)
	}
	return err
}
