package parameter

import "log/slog"

// Option configures a Parameter at construction.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	unit        string
	description string
}

// WithLogger sets the logger used for change tracing at Debug level.
// Parameters log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUnit sets the unit of the real value.
func WithUnit(unit string) Option {
	return func(o *options) { o.unit = unit }
}

// WithDescription sets a human-readable description.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
