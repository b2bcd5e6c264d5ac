package views

import "log/slog"

const defaultCacheSize = 4096

type options struct {
	caching       bool
	cacheSize     int
	defaultFormat string
	decorator     Decorator
	logger        *slog.Logger
}

// Option configures a Resolver.
type Option func(*options)

// WithCaching enables or disables the shared template cache.
func WithCaching(enabled bool) Option {
	return func(o *options) { o.caching = enabled }
}

// WithCacheSize bounds the number of cached entries.
func WithCacheSize(size int) Option {
	if size <= 0 {
		panic("WithCacheSize: size must be > 0")
	}
	return func(o *options) { o.cacheSize = size }
}

// WithDefaultFormat sets the fallback format.
func WithDefaultFormat(format string) Option {
	if format == "" {
		panic("WithDefaultFormat: format cannot be empty")
	}
	return func(o *options) { o.defaultFormat = format }
}

// WithDecorator overrides how candidates are materialized.
func WithDecorator(d Decorator) Option {
	if d == nil {
		panic("WithDecorator: nil decorator")
	}
	return func(o *options) { o.decorator = d }
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
