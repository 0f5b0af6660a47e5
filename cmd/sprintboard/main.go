package main

import (
	"context"
	"os"
	"os/signal"

	"sprintboard/internal/cli"
	"sprintboard/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], cli.Options{})
	stop()
	logger.Sync()
	os.Exit(code)
}
