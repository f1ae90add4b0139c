package tui

// Theme captures optional formatting hints applied when printing messages.
// Keep minimal to avoid coupling runner logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how many failed submissions a run tolerates before
// giving up. Zero keeps prompting until the user aborts.
func WithMaxAttempts(attempts int) Option {
	return func(r *Runner) {
		if attempts > 0 {
			r.maxAttempts = attempts
		}
	}
}
