package wizard

import (
	"io"
	"log/slog"

	"resolver-wizard/internal/resolver"
)

// Option configures a Session.
type Option func(*Options)

// Options holds the Session settings.
type Options struct {
	Logger    *slog.Logger
	Assembler *resolver.Assembler
	// ReadOnly consoles may browse a resolver but never submit or remove it.
	ReadOnly bool
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithAssembler sets the assembler that converts configuration text.
func WithAssembler(a *resolver.Assembler) Option {
	return func(o *Options) {
		o.Assembler = a
	}
}

// WithReadOnly makes the session refuse to submit or remove.
func WithReadOnly(readOnly bool) Option {
	return func(o *Options) {
		o.ReadOnly = readOnly
	}
}

// NewOptions applies opts over the defaults. Without WithAssembler an
// assembler sharing the session logger is created.
func NewOptions(opts ...Option) Options {
	options := Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, fn := range opts {
		fn(&options)
	}

	if options.Assembler == nil {
		options.Assembler = resolver.NewAssembler(resolver.WithLogger(options.Logger))
	}

	return options
}
