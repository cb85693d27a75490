package resolver

import (
	"io"
	"log/slog"

	"resolver-wizard/internal/schema"
)

// Option configures an Assembler.
type Option func(*Options)

// Options holds the Assembler settings.
type Options struct {
	Registry *schema.Registry
	Logger   *slog.Logger
}

// WithRegistry sets the type registry used to walk configurations.
func WithRegistry(r *schema.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// NewOptions applies opts over the defaults: the built-in registry and a
// logger that discards everything.
func NewOptions(opts ...Option) Options {
	options := Options{
		Registry: schema.Default(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
