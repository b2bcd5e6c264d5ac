package negotiate

import (
	"context"
	"log/slog"
)

type negotiationKey struct{}

// WithNegotiation stores n in ctx.
func WithNegotiation(ctx context.Context, n *Negotiation) context.Context {
	return context.WithValue(ctx, negotiationKey{}, n)
}

// FromContext returns the request's negotiation. Outside a negotiated request
// it returns a desktop handle in the html format.
func FromContext(ctx context.Context) *Negotiation {
	if ctx != nil {
		if n, ok := ctx.Value(negotiationKey{}).(*Negotiation); ok && n != nil {
			return n
		}
	}
	return detached()
}

// LoggerExtractor returns a ContextExtractor adding the negotiated format.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ctx == nil {
			return slog.Attr{}, false
		}
		if n, ok := ctx.Value(negotiationKey{}).(*Negotiation); ok && n != nil {
			return slog.String("format", string(n.Format())), true
		}
		return slog.Attr{}, false
	}
}
