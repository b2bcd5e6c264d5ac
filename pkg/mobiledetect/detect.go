package mobiledetect

import (
	"net/http"
	"strings"
)

// GenericDevice is reported for mobile clients that are not targeted by name.
const GenericDevice = "true"

// Detector resolves the device name of a request.
type Detector struct {
	targeted []string
	header   string
}

// New creates a Detector. Targeted devices are matched leftmost-first in the
// user agent, so "iPad; CPU iPhone OS" style strings resolve to the device
// that appears first.
func New(opts ...Option) *Detector {
	d := &Detector{
		targeted: append([]string(nil), defaultTargeted...),
		header:   defaultHeader,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the device name for r, or an empty string for non-mobile clients.
func (d *Detector) Detect(r *http.Request) string {
	if r == nil {
		return ""
	}

	if r.Header.Get("X-Wap-Profile") != "" || r.Header.Get("Profile") != "" {
		return GenericDevice
	}
	if strings.Contains(strings.ToLower(r.Header.Get("Accept")), wapAcceptKeyword) {
		return GenericDevice
	}

	lowerUA := strings.ToLower(r.UserAgent())
	if lowerUA == "" {
		return ""
	}

	if name := d.targetedDevice(lowerUA); name != "" {
		return name
	}
	if catchAllKeywords.contains(lowerUA) {
		return GenericDevice
	}
	return ""
}

// targetedDevice returns the targeted token occurring earliest in lowerUA.
func (d *Detector) targetedDevice(lowerUA string) string {
	best, bestIdx := "", -1
	for _, token := range d.targeted {
		idx := strings.Index(lowerUA, token)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best, bestIdx = token, idx
		}
	}
	return best
}

// Middleware sets the device header on matching requests.
func (d *Detector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(d.header) == "" {
			if name := d.Detect(r); name != "" {
				r.Header.Set(d.header, name)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Middleware is a shorthand for New(opts...).Middleware.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return New(opts...).Middleware
}
