package cmd

import (
	"github.com/urfave/cli/v3"
)

// xCmd returns the non-interactive subcommand group
func xCmd() *cli.Command {
	return &cli.Command{
		Name:  "x",
		Usage: "Non-interactive commands (for scripts and CI)",
		Commands: []*cli.Command{
			xCreateCmd(),
		},
	}
}

func xCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new Frontity project (non-interactive)",
		ArgsUsage: "[name]",
		Flags:     createFlags(),
		Action:    runXCreate,
	}
}
