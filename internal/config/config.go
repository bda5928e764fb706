package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything kiosk reads at startup.
type Config struct {
	APIURL            string
	LogFile           string
	LogLevel          string
	ReconcileInterval time.Duration
	RetryBase         time.Duration
	RequestTimeout    time.Duration
	PlaceholderImage  string
}

const (
	defaultConfigPath        = "~/.config/kiosk/config.toml"
	defaultLogFile           = "~/.local/state/kiosk/kiosk.log"
	defaultAPIURL            = "http://127.0.0.1:5000/api/v1"
	defaultLogLevel          = "info"
	defaultReconcileInterval = time.Second
	defaultRetryBase         = 2 * time.Second
	defaultRequestTimeout    = 5 * time.Second
	defaultPlaceholderImage  = "/assets/profile-undefined.png"

	envPrefix = "KIOSK"
)

// envOverrides are read from KIOSK_* variables. Empty values leave the file
// settings untouched.
type envOverrides struct {
	APIURL            string        `envconfig:"API_URL"`
	LogFile           string        `envconfig:"LOG_FILE"`
	LogLevel          string        `envconfig:"LOG_LEVEL"`
	ReconcileInterval time.Duration `envconfig:"RECONCILE_INTERVAL"`
	RetryBase         time.Duration `envconfig:"RETRY_BASE"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT"`
	PlaceholderImage  string        `envconfig:"PLACEHOLDER_IMAGE"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:            defaultAPIURL,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		ReconcileInterval: defaultReconcileInterval,
		RetryBase:         defaultRetryBase,
		RequestTimeout:    defaultRequestTimeout,
		PlaceholderImage:  defaultPlaceholderImage,
	}
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load locates and parses the kiosk config, falling back to defaults when
// missing, then applies KIOSK_* environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := parseFile(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseFile(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		LogFile           string `toml:"log_file"`
		LogLevel          string `toml:"log_level"`
		ReconcileInterval string `toml:"reconcile_interval"`
		RetryBase         string `toml:"retry_base"`
		RequestTimeout    string `toml:"request_timeout"`
		PlaceholderImage  string `toml:"placeholder_image"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.PlaceholderImage); v != "" {
		cfg.PlaceholderImage = v
	}

	durations := []struct {
		key  string
		raw  string
		dest *time.Duration
	}{
		{"reconcile_interval", raw.ReconcileInterval, &cfg.ReconcileInterval},
		{"retry_base", raw.RetryBase, &cfg.RetryBase},
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
	}
	for _, d := range durations {
		v := strings.TrimSpace(d.raw)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: %s: %w", d.key, err)
		}
		if parsed <= 0 {
			return fmt.Errorf("parse config: %s must be positive", d.key)
		}
		*d.dest = parsed
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if v := strings.TrimSpace(env.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(env.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(env.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(env.PlaceholderImage); v != "" {
		cfg.PlaceholderImage = v
	}
	if env.ReconcileInterval > 0 {
		cfg.ReconcileInterval = env.ReconcileInterval
	}
	if env.RetryBase > 0 {
		cfg.RetryBase = env.RetryBase
	}
	if env.RequestTimeout > 0 {
		cfg.RequestTimeout = env.RequestTimeout
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
