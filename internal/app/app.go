package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/kiosk/internal/config"
	"github.com/five82/kiosk/internal/logging"
	"github.com/five82/kiosk/internal/nav"
	"github.com/five82/kiosk/internal/prefs"
	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/session"
	"github.com/five82/kiosk/internal/storefront"
	"github.com/five82/kiosk/internal/ui"
)

// Options configure the kiosk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/kiosk/prefs.toml
	EnvFile    string // empty uses ./.env when present
	APIURL     string // overrides config when set
	Reconcile  int    // seconds; zero uses config
}

// Run boots the kiosk TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.Reconcile > 0 {
		cfg.ReconcileInterval = time.Duration(opts.Reconcile) * time.Second
	}

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	sess := &session.Flag{}
	client, err := storefront.NewClient(cfg.APIURL, storefront.ClientOptions{
		Tokens:  sess,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("init storefront client: %w", err)
	}

	queries := query.NewClient(ctx, logger)
	sources := nav.NewSources(queries, client, sess)

	reconciler := StartReconciler(ctx, sources, cfg.ReconcileInterval, cfg.RetryBase, logger)
	sess.OnChange(func(loggedIn bool) {
		logger.WithField("logged_in", loggedIn).Info("session changed")
		reconciler.Kick()
	})

	sources.Mount()

	logger.WithField("api_url", cfg.APIURL).Info("kiosk starting")
	return ui.Run(ui.Options{
		Context:     ctx,
		Session:     sess,
		Sources:     sources,
		Queries:     queries,
		Fetcher:     client,
		Logger:      logger,
		Placeholder: cfg.PlaceholderImage,
		ThemeName:   userPrefs.Theme,
		LastEmail:   userPrefs.LastEmail,
		PrefsPath:   opts.PrefsPath,
		LogFile:     cfg.LogFile,
		RetryBase:   cfg.RetryBase,
	})
}
