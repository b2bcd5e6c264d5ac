package mobiledetect

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/devicekit/pkg/device"
)

const defaultHeader = device.Header

// Option configures a Detector.
type Option func(*Detector)

// WithTargeted adds devices that are reported by name. Empty tokens panic.
func WithTargeted(tokens ...string) Option {
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			panic("mobiledetect: WithTargeted: empty token")
		}
	}
	return func(d *Detector) {
		for _, token := range tokens {
			d.targeted = append(d.targeted, strings.ToLower(strings.TrimSpace(token)))
		}
	}
}

// WithHeader overrides the request header the device name is written to.
func WithHeader(name string) Option {
	if name == "" {
		panic("mobiledetect: WithHeader: name cannot be empty")
	}
	return func(d *Detector) {
		d.header = http.CanonicalHeaderKey(name)
	}
}
