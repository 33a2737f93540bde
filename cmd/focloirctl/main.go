// Command focloirctl is the operator CLI: database migrations, seeding the
// reference dataset and user administration.
//
// It reads the same configuration as the server (CONFIG_PATH and the
// environment).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "focloirctl:", err)
		os.Exit(1)
	}
}
