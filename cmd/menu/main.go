package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/menu/internal/cli"
	"github.com/idilsaglam/menu/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		ui.SetOutput(os.Stderr)
		ui.Fail(os.Stderr, err.Error())
	}
	stop()
	os.Exit(cli.ExitCode(err))
}
