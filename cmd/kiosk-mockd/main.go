// Command kiosk-mockd serves an in-memory storefront API for local kiosk runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/five82/kiosk/internal/config"
	"github.com/five82/kiosk/internal/logging"
	"github.com/five82/kiosk/internal/mockstore"
)

// settings are read from MOCKD_* variables.
type settings struct {
	Addr     string `envconfig:"ADDR" default:"127.0.0.1:5000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Seed     bool   `envconfig:"SEED" default:"true"`
	FailCart bool   `envconfig:"FAIL_CART" default:"false"`
}

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env", "", "load environment from this file (optional, defaults to ./.env)")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "kiosk-mockd: %v\n", err)
		return 1
	}
	var s settings
	if err := envconfig.Process("MOCKD", &s); err != nil {
		fmt.Fprintf(os.Stderr, "kiosk-mockd: read env: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(logging.Options{Level: s.LogLevel, Output: os.Stdout, JSON: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "kiosk-mockd: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	store := mockstore.NewStore()
	if s.Seed {
		if err := store.Seed(); err != nil {
			logger.WithError(err).Error("seed store")
			return 1
		}
	}
	store.SetCartFailure(s.FailCart)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           mockstore.NewRouter(store, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"addr": s.Addr, "seeded": s.Seed}).Info("storefront listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped")
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown")
		return 1
	}
	logger.Info("storefront stopped")
	return 0
}
