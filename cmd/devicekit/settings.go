package main

import (
	"errors"

	"github.com/dmitrymomot/devicekit/pkg/assets"
	"github.com/dmitrymomot/devicekit/pkg/clientip"
	"github.com/dmitrymomot/devicekit/pkg/config"
	"github.com/dmitrymomot/devicekit/pkg/cookie"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/ratelimiter"
	"github.com/dmitrymomot/devicekit/pkg/redis"
	"github.com/dmitrymomot/devicekit/pkg/session"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// settings gathers the configuration of every component.
type settings struct {
	Env       environment.Config
	Log       logger.Config
	HTTP      httpserver.Config
	Cookie    cookie.Config
	Session   session.Config
	Redis     redis.Config
	Negotiate negotiate.Config
	Views     views.Config
	S3        views.S3Config
	Assets    assets.Config
	ClientIP  clientip.Config
	RateLimit ratelimiter.Config
}

func loadSettings() (settings, error) {
	var s settings
	err := errors.Join(
		config.Load(&s.Env),
		config.Load(&s.Log),
		config.Load(&s.HTTP),
		config.Load(&s.Cookie),
		config.Load(&s.Session),
		config.Load(&s.Redis),
		config.Load(&s.Negotiate),
		config.Load(&s.Views),
		config.Load(&s.S3),
		config.Load(&s.Assets),
		config.Load(&s.ClientIP),
		config.Load(&s.RateLimit),
	)
	return s, err
}
