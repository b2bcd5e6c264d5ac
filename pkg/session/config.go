package session

import "time"

// Config holds session configuration.
type Config struct {
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"720h"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"2160h"`

	// ActivityUpdateThreshold is the minimum time between activity updates.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`

	// CleanupInterval for the in-memory store (0 disables the sweep).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// Store selects the backend: "memory" or "redis".
	Store       string `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns the default session configuration. View preferences
// are long-lived, so the idle timeout is measured in days.
func DefaultConfig() Config {
	return Config{
		CookieName:              "sid",
		IdleTimeout:             30 * 24 * time.Hour,
		MaxLifetime:             90 * 24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
		Store:                   "memory",
		RedisPrefix:             DefaultRedisPrefix,
	}
}

// NewFromConfig creates a Manager from cfg.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
