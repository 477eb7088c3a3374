package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/san-kum/fieldviz/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewToolsCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
