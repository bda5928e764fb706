package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the compact navbar is used.
	LayoutCompactWidth = 100

	// DialogWidth is the inner width of the login and register dialogs.
	DialogWidth = 40
)

// LogTailLines is how many log lines the activity page keeps.
const LogTailLines = 200

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// SubmitTimeout bounds a login or register request.
	SubmitTimeout = 10 * time.Second
)
