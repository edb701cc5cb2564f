package mapper

import (
	"log/slog"
	"time"
)

// Observer receives compile and execute events. metrics.Collector is the
// Prometheus implementation.
type Observer interface {
	// Compiled is called after every successful compile.
	Compiled(mapper string, fields int, d time.Duration)
	// Executed is called after every Execute that ran the routine.
	Executed(mapper string, d time.Duration, fieldErrors int)
}

// Option configures a Mapper.
type Option func(*options)

type options struct {
	name     string
	unsafe   bool
	logger   *slog.Logger
	observer Observer
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithUnsafe disables per-field error collection: the first failing field
// aborts Execute and panics propagate to the caller.
func WithUnsafe() Option {
	return func(o *options) {
		o.unsafe = true
	}
}

// WithName names the mapper in logs, metrics, rendered source and exports.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger. Compile events and collected field errors are
// logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the compile and execute observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
