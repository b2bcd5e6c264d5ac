package negotiate

import "github.com/dmitrymomot/devicekit/pkg/device"

// Input is everything a negotiation decision depends on besides preferences.
type Input struct {
	UserAgent    string
	DeviceHeader string
	XHR          bool
	Exempt       bool
	// Current is the format already inferred for the request; empty means html.
	Current Format
}

// Decide returns the format for the request and the preferences to persist.
// The returned preferences differ from prefs only when a device format is
// chosen for a client without a recorded preference.
func Decide(in Input, prefs Preferences) (Format, Preferences) {
	current := in.Current
	if current == "" {
		current = FormatHTML
	}
	if in.XHR || in.Exempt || current != FormatHTML {
		return current, prefs
	}

	var target Format
	switch device.Classify(in.UserAgent, in.DeviceHeader) {
	case device.Tablet:
		target = FormatTablet
	case device.Mobile:
		target = FormatMobile
	default:
		return current, prefs
	}

	pref := prefs.For(target)
	if isFalse(pref) {
		return current, prefs
	}
	if pref == nil {
		prefs = prefs.Clone()
		prefs.set(target, Bool(true))
	}
	return target, prefs
}
