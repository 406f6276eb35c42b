package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/olimci/frontity-create/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx, os.Args)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		log.Error("interrupted", "err", err)
		os.Exit(130)
	default:
		log.Error(err)
		os.Exit(1)
	}
}
