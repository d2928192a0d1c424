// Package convert — converter options.
// Options are applied at construction via functional options; the
// resulting Converter is immutable and safe to share.
package convert

import "log/slog"

// defaultImplicitCodeLength is the character threshold above which an
// inline <code> element is promoted to a block when implicit code block
// detection is enabled.
const defaultImplicitCodeLength = 60

// Options configures a Converter.
type Options struct {
	// GitHubCodeBlocks emits triple-backtick fences for block code
	// instead of the 4-space indent convention.
	GitHubCodeBlocks bool

	// ImplicitCodeBlocks promotes long or multi-line <code> elements to
	// block rendering even without a <pre> parent.
	ImplicitCodeBlocks bool

	// ImplicitCodeLength is the character threshold for implicit block
	// promotion. Defaults to 60.
	ImplicitCodeLength int

	// RaiseErrors makes an unrecognized tag abort the whole conversion.
	// When off, the tag is reported to Logger and contributes nothing.
	RaiseErrors bool

	// Logger receives unrecognized-tag reports when RaiseErrors is off.
	// A nil Logger disables reporting.
	Logger *slog.Logger

	// LogLevel is the severity used for unrecognized-tag reports.
	LogLevel slog.Level
}

// Option configures a Converter at construction time.
type Option func(*Options)

// WithGitHubCodeBlocks toggles triple-backtick fences for block code.
func WithGitHubCodeBlocks(enable bool) Option {
	return func(o *Options) {
		o.GitHubCodeBlocks = enable
	}
}

// WithImplicitCodeBlocks toggles block promotion of long or multi-line
// <code> elements that have no <pre> parent.
func WithImplicitCodeBlocks(enable bool) Option {
	return func(o *Options) {
		o.ImplicitCodeBlocks = enable
	}
}

// WithImplicitCodeLength sets the character threshold for implicit block
// promotion. Non-positive values keep the default.
func WithImplicitCodeLength(limit int) Option {
	return func(o *Options) {
		if limit > 0 {
			o.ImplicitCodeLength = limit
		}
	}
}

// WithRaiseErrors makes unrecognized tags fatal to the conversion.
func WithRaiseErrors(enable bool) Option {
	return func(o *Options) {
		o.RaiseErrors = enable
	}
}

// WithLogger injects the logger (and severity) used to report
// unrecognized tags when they are not fatal.
func WithLogger(logger *slog.Logger, level slog.Level) Option {
	return func(o *Options) {
		o.Logger = logger
		o.LogLevel = level
	}
}

// applyOptions builds the effective Options from defaults plus overrides.
func applyOptions(opts ...Option) Options {
	options := Options{
		ImplicitCodeLength: defaultImplicitCodeLength,
		LogLevel:           slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
