package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olimci/frontity-create/pkg/create"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/urfave/cli/v3"
)

func runXCreate(ctx context.Context, cmd *cli.Command) error {
	in, err := readCreateInput(cmd)
	if err != nil {
		return err
	}
	in.resolvePath()

	printer := newLogPrinter(logOutputPlain, os.Stdout)
	collector := events.NewCollector(events.NewHandlerFunc(printer.Print))

	err = create.Run(ctx, in.opts, in.runOptions(create.WithHandler(collector))...).Wait()

	for _, line := range formatSummary(collector.Summary()) {
		fmt.Println(line)
	}

	return err
}
