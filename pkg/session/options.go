package session

import (
	"time"

	"github.com/dmitrymomot/devicekit/pkg/cookie"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the session store. Defaults to a MemoryStore.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTransport sets the token transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

// WithConfig replaces the configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

// WithTimeouts sets the idle timeout and maximum lifetime.
func WithTimeouts(idle, max time.Duration) Option {
	return func(m *Manager) {
		m.config.IdleTimeout = idle
		m.config.MaxLifetime = max
	}
}

// WithActivityUpdateThreshold sets the minimum time between activity updates.
func WithActivityUpdateThreshold(threshold time.Duration) Option {
	return func(m *Manager) { m.config.ActivityUpdateThreshold = threshold }
}

// WithCookieManager enables the default encrypted cookie transport.
func WithCookieManager(cookies *cookie.Manager, opts ...cookie.Option) Option {
	return func(m *Manager) {
		m.cookies = cookies
		m.cookieOptions = opts
	}
}
