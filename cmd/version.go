package cmd

import (
	"context"
	"fmt"

	"github.com/olimci/frontity-create/pkg/version"
	"github.com/urfave/cli/v3"
)

func runVersion(ctx context.Context, cmd *cli.Command) error {
	fmt.Printf("frontity-create version %s\n", Version)
	if rev := version.Revision(); rev != "" {
		fmt.Printf("revision %s\n", rev)
	}
	return nil
}
