package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearKioskEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KIOSK_API_URL", "KIOSK_LOG_FILE", "KIOSK_LOG_LEVEL", "KIOSK_RECONCILE_INTERVAL",
		"KIOSK_RETRY_BASE", "KIOSK_REQUEST_TIMEOUT", "KIOSK_PLACEHOLDER_IMAGE",
	} {
		// Setenv registers the restore; unset so envconfig sees no value.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKioskEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.ReconcileInterval != defaultReconcileInterval || cfg.RetryBase != defaultRetryBase {
		t.Fatalf("durations = %v/%v, want defaults", cfg.ReconcileInterval, cfg.RetryBase)
	}
	if cfg.PlaceholderImage != defaultPlaceholderImage {
		t.Fatalf("PlaceholderImage = %q", cfg.PlaceholderImage)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKioskEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://shop.local:8080/api/v1  "
log_file = "  ~/logs/kiosk.log  "
log_level = "debug"
reconcile_interval = "500ms"
retry_base = "3s"
placeholder_image = "/img/none.png"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://shop.local:8080/api/v1" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.ReconcileInterval != 500*time.Millisecond || cfg.RetryBase != 3*time.Second {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want default", cfg.RequestTimeout)
	}
	if cfg.PlaceholderImage != "/img/none.png" {
		t.Fatalf("PlaceholderImage = %q", cfg.PlaceholderImage)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearKioskEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://file/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("KIOSK_API_URL", "http://env/api")
	t.Setenv("KIOSK_RETRY_BASE", "7s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env/api" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.RetryBase != 7*time.Second {
		t.Fatalf("RetryBase = %v, want 7s", cfg.RetryBase)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	clearKioskEnv(t)
	cases := map[string]string{
		"toml":     `api_url = [`,
		"duration": `retry_base = "soon"`,
		"negative": `reconcile_interval = "-1s"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %v, want parse config error", err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearKioskEnv(t)

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnvFile(missing) = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("KIOSK_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("KIOSK_DOTENV_PROBE", "")
	os.Unsetenv("KIOSK_DOTENV_PROBE")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile returned error: %v", err)
	}
	if got := os.Getenv("KIOSK_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("KIOSK_DOTENV_PROBE = %q, want from-file", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
