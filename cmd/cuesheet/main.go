// Command cuesheet reads, indexes and watches CUE sheets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/simonhull/cuesheet/cmd/cuesheet/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
