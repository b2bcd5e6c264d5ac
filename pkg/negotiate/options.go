package negotiate

import "log/slog"

const defaultFormatParam = "format"

type options struct {
	auto        bool
	forced      Format
	header      string
	formatParam string
	exempt      []string
	logger      *slog.Logger
}

// Option configures a Negotiator. Invalid combinations are reported by Register.
type Option func(*options)

// WithAutoFormat enables or disables automatic negotiation. When disabled the
// query helpers and ForceFormat still work.
func WithAutoFormat(enabled bool) Option {
	return func(o *options) { o.auto = enabled }
}

// WithForcedFormat serves every non-XHR request in f.
func WithForcedFormat(f Format) Option {
	return func(o *options) { o.forced = f }
}

// WithDeviceHeader sets the request header carrying the mobile device name.
func WithDeviceHeader(name string) Option {
	return func(o *options) { o.header = name }
}

// WithFormatParam sets the query parameter that overrides the inferred
// format. An empty name disables the override.
func WithFormatParam(name string) Option {
	return func(o *options) { o.formatParam = name }
}

// WithExemptActions adds exempt actions on top of the controller's own.
func WithExemptActions(actions ...string) Option {
	return func(o *options) { o.exempt = append(o.exempt, actions...) }
}

// WithLogger sets the logger for preference persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
