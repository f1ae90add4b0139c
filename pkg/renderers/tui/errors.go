package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when a bounded run exhausts its
	// submission attempts without an accepted result.
	ErrTooManyAttempts = errors.New("tui: too many failed attempts")
)
