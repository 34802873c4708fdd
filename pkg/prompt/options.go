package prompt

import "go.uber.org/zap"

// Theme holds message prefixes: InfoPrefix for notices, ErrorPrefix for
// rejected answers.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// WithMaxInstances caps how many instances of a multiple-instance template
// the filler offers to add. Zero means no cap.
func WithMaxInstances(n int) Option {
	return func(f *Filler) {
		if n >= 0 {
			f.maxInstances = n
		}
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}
