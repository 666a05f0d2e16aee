package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog-service/internal/cli"
	"catalog-service/internal/infrastructure/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		logging.Default().Error("catalog exited", "error", err)
		stop()
		os.Exit(1)
	}
}
