package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/yorch/doral-courts/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.Execute(ctx)
}
