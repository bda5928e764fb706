// Package app provides the orchestration layer for the kiosk application.
//
// # Overview
//
// This package wires together configuration, logging, the session flag, the
// storefront client, the query cache and the UI. It is the composition root
// where all dependencies are created and connected.
//
// # Startup
//
//  1. Load .env (optional) and ~/.config/kiosk/config.toml with KIOSK_* overrides
//  2. Open the log file; the TUI owns stdout
//  3. Create the session flag and the storefront client reading its token
//  4. Register the profile and cart queries on a shared query client
//  5. Start the reconciler and kick it on every session transition
//  6. Mount: fetch the cart unconditionally and the profile when signed in
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          config file + env
//	       ├─────> logging.New()          log file
//	       ├─────> storefront.NewClient() HTTP client, bearer from session.Flag
//	       ├─────> nav.NewSources()       profile + cart queries
//	       ├─────> StartReconciler()      background fetch decisions
//	       └─────> ui.Run()               TUI (blocks)
//
//	Reconciler loop:
//	┌──────────────────────────────────────────────┐
//	│ tick or Kick()                               │
//	│  ├─> sources.Inputs()  flag + cached results │
//	│  ├─> nav.Reconciler.Evaluate()               │
//	│  └─> sources.Apply()   refetch / invalidate  │
//	└──────────────────────────────────────────────┘
//
// # Error Handling
//
// Configuration, logging and client construction errors are fatal and
// returned from Run. Fetch failures are recorded in the query cache and
// retried by the reconciler with exponential backoff; they never stop the UI.
package app
