package negotiate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/devicekit/pkg/device"
)

// NegotiationAware is implemented by controllers that opt in to format
// negotiation.
type NegotiationAware interface {
	// ExemptActions lists the actions that keep the inferred format.
	ExemptActions() []string
}

// Policy is an immutable set of exempt actions.
type Policy struct {
	exempt map[string]struct{}
}

// NewPolicy builds a policy. Empty action names are rejected.
func NewPolicy(actions ...string) (Policy, error) {
	p := Policy{exempt: make(map[string]struct{}, len(actions))}
	for _, a := range actions {
		a = strings.TrimSpace(a)
		if a == "" {
			return Policy{}, fmt.Errorf("%w: empty exempt action", ErrInvalidConfig)
		}
		p.exempt[a] = struct{}{}
	}
	return p, nil
}

// IsExempt reports whether action keeps the inferred format.
func (p Policy) IsExempt(action string) bool {
	_, ok := p.exempt[action]
	return ok
}

// Actions returns the exempt actions in sorted order.
func (p Policy) Actions() []string {
	out := make([]string, 0, len(p.exempt))
	for a := range p.exempt {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// Negotiator negotiates formats for the routes of one controller.
type Negotiator struct {
	policy      Policy
	store       PreferenceStore
	auto        bool
	forced      Format
	header      string
	formatParam string
	logger      *slog.Logger
}

// Register validates the controller's configuration and returns its
// negotiator. Misconfiguration is reported here, never at request time.
func Register(aware NegotiationAware, store PreferenceStore, opts ...Option) (*Negotiator, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil preference store", ErrInvalidConfig)
	}

	o := &options{
		auto:        true,
		header:      device.Header,
		formatParam: defaultFormatParam,
	}
	for _, opt := range opts {
		opt(o)
	}

	var errs []error
	if o.header == "" {
		errs = append(errs, errors.New("device header cannot be empty"))
	}
	if o.forced != "" && !o.forced.IsDevice() {
		errs = append(errs, fmt.Errorf("cannot force %q format", o.forced))
	}
	if o.forced != "" && !o.auto {
		errs = append(errs, errors.New("forced format requires automatic format selection"))
	}

	var actions []string
	if aware != nil {
		actions = aware.ExemptActions()
	}
	actions = append(actions, o.exempt...)
	policy, err := NewPolicy(actions...)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Negotiator{
		policy:      policy,
		store:       store,
		auto:        o.auto,
		forced:      o.forced,
		header:      http.CanonicalHeaderKey(o.header),
		formatParam: o.formatParam,
		logger:      logger,
	}, nil
}

// MustRegister is like Register but panics on error.
func MustRegister(aware NegotiationAware, store PreferenceStore, opts ...Option) *Negotiator {
	n, err := Register(aware, store, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// NewFromConfig registers a negotiator configured from cfg. Explicit options
// override config values.
func NewFromConfig(cfg Config, aware NegotiationAware, store PreferenceStore, opts ...Option) (*Negotiator, error) {
	base := []Option{WithAutoFormat(cfg.AutoFormat)}
	if cfg.DeviceHeader != "" {
		base = append(base, WithDeviceHeader(cfg.DeviceHeader))
	}
	if cfg.FormatParam != "" {
		base = append(base, WithFormatParam(cfg.FormatParam))
	}
	if cfg.ForcedFormat != "" {
		base = append(base, WithForcedFormat(Format(cfg.ForcedFormat)))
	}
	if len(cfg.ExemptActions) > 0 {
		base = append(base, WithExemptActions(cfg.ExemptActions...))
	}
	return Register(aware, store, append(base, opts...)...)
}

// Policy returns the exemption policy.
func (n *Negotiator) Policy() Policy { return n.policy }

// Action returns middleware that negotiates requests routed to action.
func (n *Negotiator) Action(action string) func(http.Handler) http.Handler {
	exempt := n.policy.IsExempt(action)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			neg := n.Begin(w, r, action, exempt)
			ctx := WithNegotiation(r.Context(), neg)
			r = r.WithContext(ctx)
			neg.r = r

			switch {
			case n.forced != "":
				if err := neg.ForceFormat(ctx, n.forced); err != nil {
					n.logger.WarnContext(ctx, "failed to persist forced view preference",
						slog.String("action", action),
						slog.Any("error", err),
					)
				}
			case n.auto:
				neg.Negotiate(ctx)
			}

			w.Header().Add("Vary", "User-Agent")
			w.Header().Add("Vary", n.header)
			next.ServeHTTP(w, r)
		})
	}
}

// Middleware negotiates every request under an unnamed, non-exempt action.
func (n *Negotiator) Middleware(next http.Handler) http.Handler {
	return n.Action("")(next)
}

// Begin builds the negotiation for r without running it.
func (n *Negotiator) Begin(w http.ResponseWriter, r *http.Request, action string, exempt bool) *Negotiation {
	format := FormatHTML
	if n.formatParam != "" {
		if v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(n.formatParam))); v != "" {
			format = Format(v)
		}
	}

	return &Negotiation{
		w:            w,
		r:            r,
		store:        n.store,
		logger:       n.logger,
		action:       action,
		userAgent:    r.UserAgent(),
		deviceHeader: strings.TrimSpace(r.Header.Get(n.header)),
		xhr:          IsXHR(r),
		exempt:       exempt,
		format:       format,
		prefs:        n.store.Load(r),
	}
}
