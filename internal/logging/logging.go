// Package logging builds the logrus logger used across kiosk.
//
// The TUI owns the terminal, so the client logs to a file. The dev
// storefront server logs JSON to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configure New.
type Options struct {
	Level  string
	Output io.Writer // takes precedence over File
	File   string
	JSON   bool
}

// New returns a configured logger and a close func for the underlying file.
// An unknown level falls back to info.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	closer := func() error { return nil }
	switch {
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	case strings.TrimSpace(opts.File) != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f.Close
	default:
		logger.SetOutput(io.Discard)
	}

	return logger, closer, nil
}
