package negotiate

import "github.com/dmitrymomot/devicekit/pkg/device"

// Config holds negotiation settings.
type Config struct {
	DeviceHeader     string `env:"NEGOTIATE_DEVICE_HEADER" envDefault:"X-Mobile-Device"`
	FormatParam      string `env:"NEGOTIATE_FORMAT_PARAM" envDefault:"format"`
	AutoFormat       bool   `env:"NEGOTIATE_AUTO_FORMAT" envDefault:"true"`
	SessionMobileKey string `env:"NEGOTIATE_SESSION_MOBILE_KEY" envDefault:"mobile_view"`
	SessionTabletKey string `env:"NEGOTIATE_SESSION_TABLET_KEY" envDefault:"tablet_view"`
	CookieName       string `env:"NEGOTIATE_COOKIE_NAME" envDefault:"device_view"`

	// Store selects where preferences persist: "session" or "cookie".
	Store         string   `env:"NEGOTIATE_STORE" envDefault:"session"`
	ForcedFormat  string   `env:"NEGOTIATE_FORCED_FORMAT"`
	ExemptActions []string `env:"NEGOTIATE_EXEMPT_ACTIONS" envSeparator:","`
}

// DefaultConfig returns the default negotiation settings.
func DefaultConfig() Config {
	return Config{
		DeviceHeader:     device.Header,
		FormatParam:      defaultFormatParam,
		AutoFormat:       true,
		SessionMobileKey: DefaultMobileKey,
		SessionTabletKey: DefaultTabletKey,
		CookieName:       DefaultCookieName,
		Store:            "session",
	}
}
