package device

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Header is the canonical request header carrying the detected mobile device name.
const Header = "X-Mobile-Device"

// Category is the device class of the requesting client.
type Category int

const (
	Desktop Category = iota
	Mobile
	Tablet
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// tabletPattern matches lowercased user agents of tablet hardware.
// Order is irrelevant; any hit classifies the client as a tablet.
var tabletPattern = regexp.MustCompile(`ipad|android 3\.0|xoom|sch-i800|gt-p1000|playbook|tablet|kindle|honeycomb|nexus 7`)

// jsEnabledTokens lists devices known to run a capable JavaScript engine.
var jsEnabledTokens = []string{"iphone", "ipod", "ipad", "mobileexplorer", "android"}

// Classify returns the category for the given user agent and device header.
// Tablet markers take priority and the header is not consulted for them.
func Classify(userAgent, deviceHeader string) Category {
	if IsTablet(userAgent) {
		return Tablet
	}
	if strings.TrimSpace(deviceHeader) != "" {
		return Mobile
	}
	return Desktop
}

// IsTablet reports whether the user agent carries a tablet marker.
func IsTablet(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	return tabletPattern.MatchString(strings.ToLower(userAgent))
}

// IsMobile reports whether the client is a mobile (non-tablet) device.
// It is always false when IsTablet is true.
func IsMobile(userAgent, deviceHeader string) bool {
	return Classify(userAgent, deviceHeader) == Mobile
}

// IsDevice reports whether token occurs in userAgent, ignoring case.
func IsDevice(userAgent, token string) bool {
	if token == "" || userAgent == "" {
		return false
	}
	return strings.Contains(lower(userAgent), lower(token))
}

// IsJSEnabledMobile reports whether the user agent belongs to a handheld
// device with a JavaScript capable browser.
func IsJSEnabledMobile(userAgent string) bool {
	for _, token := range jsEnabledTokens {
		if IsDevice(userAgent, token) {
			return true
		}
	}
	return false
}

// lower folds s for case-insensitive comparison. A Caser is stateful, so a
// fresh one is built for each non-ASCII input.
func lower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return cases.Fold().String(s)
		}
	}
	return strings.ToLower(s)
}
