package apiserver

import (
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc"
)

// Option configures a Client.
type Option func(*Options)

// Options holds the Client settings.
type Options struct {
	Logger *slog.Logger
	// Timeout bounds each call; zero means no bound beyond the caller's context.
	Timeout     time.Duration
	Insecure    bool
	DialOptions []grpc.DialOption
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithTimeout bounds every call to d.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithInsecure dials without transport security.
func WithInsecure(insecure bool) Option {
	return func(o *Options) {
		o.Insecure = insecure
	}
}

// WithDialOptions appends gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *Options) {
		o.DialOptions = append(o.DialOptions, opts...)
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	options := Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
