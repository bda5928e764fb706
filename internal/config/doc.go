// Package config loads kiosk's startup configuration.
//
// # Resolution order
//
//  1. Built-in defaults (Defaults)
//  2. ~/.config/kiosk/config.toml, or the path passed to Load
//  3. KIOSK_* environment variables, optionally seeded from a .env file
//     via LoadEnvFile
//
// A missing config file is not an error. Empty values in the file or the
// environment leave the previous layer in place.
//
// # TOML format
//
//	api_url = "http://127.0.0.1:5000/api/v1"
//	log_file = "~/.local/state/kiosk/kiosk.log"
//	log_level = "debug"
//	reconcile_interval = "1s"
//	retry_base = "2s"
//	request_timeout = "5s"
//	placeholder_image = "/assets/profile-undefined.png"
//
// # Environment
//
//	KIOSK_API_URL, KIOSK_LOG_FILE, KIOSK_LOG_LEVEL, KIOSK_RECONCILE_INTERVAL,
//	KIOSK_RETRY_BASE, KIOSK_REQUEST_TIMEOUT, KIOSK_PLACEHOLDER_IMAGE
//
// Paths beginning with ~ are expanded against the user's home directory.
package config
