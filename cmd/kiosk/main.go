package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/kiosk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override kiosk config path (optional)")
	envFile := flag.String("env", "", "load environment from this file (optional, defaults to ./.env)")
	apiURL := flag.String("api", "", "storefront API base URL (optional)")
	reconcileSeconds := flag.Int("reconcile", 0, "reconcile interval in seconds (optional, defaults to 1s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvFile:    *envFile,
		APIURL:     *apiURL,
	}
	if secs := *reconcileSeconds; secs > 0 {
		opts.Reconcile = secs
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "kiosk: %v\n", err)
		return 1
	}
	return 0
}
