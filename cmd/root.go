package cmd

import (
	"context"

	"github.com/olimci/frontity-create/pkg/config"
	"github.com/olimci/frontity-create/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "frontity",
		Usage: "Create Frontity projects",
		Commands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "print version",
				Action: runVersion,
			},
			{
				Name:      "create",
				Usage:     "Create a new Frontity project",
				ArgsUsage: "[name]",
				Flags: append(createFlags(),
					&cli.BoolFlag{Name: "no-ui", Value: false, Usage: "Disable prompts and the progress view"},
				),
				Action: runCreate,
			},
			xCmd(),
		},
	}

	return app.Run(ctx, args)
}

func createFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Project directory (defaults to ./<name>)"},
		&cli.StringFlag{Name: "theme", Aliases: []string{"t"}, Usage: "Starter theme (npm package or git URL)"},
		&cli.BoolFlag{Name: "typescript", Usage: "Create a TypeScript project"},
		&cli.StringSliceFlag{Name: "packages", Usage: "Additional npm package (repeatable)"},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   config.DefaultPath,
			Usage:   "Defaults file (.toml, .yaml, .yml, .json)",
			Sources: cli.EnvVars("FRONTITY_CREATE_CONFIG"),
		},
		&cli.BoolFlag{Name: "debug", Usage: "Log debug output"},
	}
}
