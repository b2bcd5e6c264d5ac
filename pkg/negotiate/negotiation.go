package negotiate

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/devicekit/pkg/device"
)

// Negotiation is the per-request negotiation state. It is safe for use by
// multiple goroutines serving the same request.
type Negotiation struct {
	mu sync.RWMutex

	w      http.ResponseWriter
	r      *http.Request
	store  PreferenceStore
	logger *slog.Logger

	action       string
	userAgent    string
	deviceHeader string
	xhr          bool
	exempt       bool

	format Format
	prefs  Preferences
}

// detached returns a handle for code running outside a negotiated request.
func detached() *Negotiation {
	return &Negotiation{format: FormatHTML, logger: slog.New(slog.DiscardHandler)}
}

// Format returns the format chosen for the request.
func (n *Negotiation) Format() Format {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.format
}

// InFormat reports whether the request is served in f.
func (n *Negotiation) InFormat(f Format) bool {
	return n.Format() == f
}

// InMobileView reports whether the request is served in the mobile format.
func (n *Negotiation) InMobileView() bool { return n.InFormat(FormatMobile) }

// InTabletView reports whether the request is served in the tablet format.
func (n *Negotiation) InTabletView() bool { return n.InFormat(FormatTablet) }

// IsTabletDevice reports whether the user agent belongs to a tablet.
func (n *Negotiation) IsTabletDevice() bool {
	return device.IsTablet(n.userAgent)
}

// IsMobileDevice reports whether the client is a mobile device. It is always
// false for tablets.
func (n *Negotiation) IsMobileDevice() bool {
	return device.IsMobile(n.userAgent, n.deviceHeader)
}

// IsDevice reports whether the user agent contains token, ignoring case.
func (n *Negotiation) IsDevice(token string) bool {
	return device.IsDevice(n.userAgent, token)
}

// IsJSEnabledMobileDevice reports whether the device runs a capable JavaScript engine.
func (n *Negotiation) IsJSEnabledMobileDevice() bool {
	return device.IsJSEnabledMobile(n.userAgent)
}

// DeviceIdentifier returns the raw mobile device header.
func (n *Negotiation) DeviceIdentifier() (string, bool) {
	return n.deviceHeader, n.deviceHeader != ""
}

// Preferences returns a copy of the client's preferences.
func (n *Negotiation) Preferences() Preferences {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.prefs.Clone()
}

// Action returns the action name the request was registered under.
func (n *Negotiation) Action() string { return n.action }

// IsXHR reports whether the request was made programmatically.
func (n *Negotiation) IsXHR() bool { return n.xhr }

// IsExempt reports whether the action is exempt from negotiation.
func (n *Negotiation) IsExempt() bool { return n.exempt }

// Negotiate applies the negotiation rules and persists a newly recorded
// preference. Calling it again yields the same format. A failing store is
// logged; the chosen format still applies.
func (n *Negotiation) Negotiate(ctx context.Context) Format {
	n.mu.Lock()
	format, prefs := Decide(Input{
		UserAgent:    n.userAgent,
		DeviceHeader: n.deviceHeader,
		XHR:          n.xhr,
		Exempt:       n.exempt,
		Current:      n.format,
	}, n.prefs)
	changed := !prefs.Equal(n.prefs)
	n.format, n.prefs = format, prefs
	n.mu.Unlock()

	if changed {
		if err := n.persist(ctx, prefs); err != nil {
			n.logger.WarnContext(ctx, "failed to persist view preference",
				slog.String("action", n.action),
				slog.Any("error", err),
			)
		}
	}
	return format
}

// ForceFormat switches the request to f regardless of the device. It is a
// no-op for XHR requests. The matching preference is recorded as true when
// unset; the other preference is left alone.
func (n *Negotiation) ForceFormat(ctx context.Context, f Format) error {
	if !f.IsDevice() {
		return ErrUnsupportedFormat
	}
	if n.xhr {
		return nil
	}

	n.mu.Lock()
	n.format = f
	changed := n.prefs.For(f) == nil
	if changed {
		n.prefs = n.prefs.Clone()
		n.prefs.set(f, Bool(true))
	}
	prefs := n.prefs
	n.mu.Unlock()

	if !changed {
		return nil
	}
	return n.persist(ctx, prefs)
}

// SetPreference records the client's choice for the mobile or tablet view.
// It takes effect from the next negotiation.
func (n *Negotiation) SetPreference(ctx context.Context, f Format, on bool) error {
	if !f.IsDevice() {
		return ErrUnsupportedFormat
	}

	n.mu.Lock()
	n.prefs = n.prefs.Clone()
	n.prefs.set(f, Bool(on))
	prefs := n.prefs
	n.mu.Unlock()

	return n.persist(ctx, prefs)
}

// ResetPreferences forgets both preferences.
func (n *Negotiation) ResetPreferences(ctx context.Context) error {
	n.mu.Lock()
	n.prefs = Preferences{}
	n.mu.Unlock()

	return n.persist(ctx, Preferences{})
}

func (n *Negotiation) persist(ctx context.Context, prefs Preferences) error {
	if n.store == nil || n.r == nil {
		return ErrNoStore
	}
	return n.store.Save(n.w, n.r.WithContext(ctx), prefs)
}
