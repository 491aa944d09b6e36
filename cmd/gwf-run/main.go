// Command gwf-run is the headless runner for the groundwater-flow model.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/scharlton2/modflowapi/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
