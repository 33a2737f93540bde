// Command server runs the Focloireacht HTTP API.
//
// Usage:
//
//	server [-migrate]
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment; see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/focloireacht-backend/internal/app"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending database migrations before serving")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Options{Migrate: *migrate}); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
