package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/devicekit/pkg/assets"
	"github.com/dmitrymomot/devicekit/pkg/cookie"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/mobiledetect"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/ratelimiter"
	"github.com/dmitrymomot/devicekit/pkg/redis"
	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/session"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// site is the controller behind every route. Preference and inspection
// endpoints keep the format they were asked for.
type site struct{}

func (site) ExemptActions() []string {
	return []string{actionResolve, actionPreference, actionReset}
}

const (
	actionPage       = "pages#show"
	actionResolve    = "views#resolve"
	actionPreference = "preferences#update"
	actionReset      = "preferences#reset"
)

type app struct {
	settings   settings
	env        environment.Environment
	log        *slog.Logger
	detector   *mobiledetect.Detector
	sessions   *session.Manager
	negotiator *negotiate.Negotiator
	resolver   *views.Resolver
	renderer   *render.Renderer
	limiter    *ratelimiter.Bucket
	checks     map[string]httpserver.Check
	closers    []func() error
}

func newApp(ctx context.Context, s settings, log *slog.Logger) (*app, error) {
	a := &app{
		settings: s,
		env:      s.Env.Environment(),
		log:      log,
		checks:   make(map[string]httpserver.Check),
	}

	cookies, err := a.newCookies()
	if err != nil {
		return nil, err
	}

	store, err := a.newPreferenceStore(ctx, cookies)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	a.detector = mobiledetect.New(mobiledetect.WithHeader(s.Negotiate.DeviceHeader))
	a.negotiator, err = negotiate.NewFromConfig(s.Negotiate, site{}, store,
		negotiate.WithLogger(log.With(logger.Component("negotiate"))),
	)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	lookup, err := newLookup(ctx, s)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.resolver = views.NewFromConfig(s.Views, lookup,
		views.WithCaching(s.Views.CachingEnabled(a.env.CachesViews())),
		views.WithLogger(log.With(logger.Component("views"))),
	)
	a.renderer = render.New(a.resolver,
		render.WithStylesheets(assets.LinkTags(s.Assets.StylesheetsURL), s.Assets.StylesheetsDir),
		render.WithLogger(log.With(logger.Component("render"))),
	)

	if s.RateLimit.Enabled() {
		store := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, store.Close)
		if a.limiter, err = ratelimiter.NewBucket(store, s.RateLimit); err != nil {
			return nil, errors.Join(err, a.Close())
		}
	}

	log.InfoContext(ctx, "application configured",
		slog.Int("template_sources", len(lookup)),
		slog.Bool("view_caching", a.resolver.Caching()),
		slog.String("preference_store", s.Negotiate.Store),
		slog.Bool("rate_limit", a.limiter != nil),
	)
	return a, nil
}

func (a *app) newCookies() (*cookie.Manager, error) {
	cfg := a.settings.Cookie
	if strings.TrimSpace(cfg.Secrets) == "" && a.env.IsDevelopment() {
		cfg.Secrets = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
		a.log.Warn("COOKIE_SECRETS not set, using an ephemeral secret")
	}
	cookies, err := cookie.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("cookies: %w", err)
	}
	return cookies, nil
}

func (a *app) newPreferenceStore(ctx context.Context, cookies *cookie.Manager) (negotiate.PreferenceStore, error) {
	switch a.settings.Negotiate.Store {
	case "cookie":
		return negotiate.NewCookieStore(cookies, a.settings.Negotiate.CookieName), nil
	case "session", "":
	default:
		return nil, fmt.Errorf("%w: unknown preference store %q", negotiate.ErrInvalidConfig, a.settings.Negotiate.Store)
	}

	opts := []session.Option{session.WithCookieManager(cookies)}
	switch a.settings.Session.Store {
	case "redis":
		client, err := redis.Connect(ctx, a.settings.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.checks["redis"] = redis.Healthcheck(client)
		opts = append(opts, session.WithStore(session.NewRedisStore(client, a.settings.Session.RedisPrefix)))
	case "memory", "":
	default:
		return nil, fmt.Errorf("unknown session store %q", a.settings.Session.Store)
	}

	a.sessions = session.NewFromConfig(a.settings.Session, opts...)
	a.closers = append(a.closers, a.sessions.Close)
	return negotiate.NewSessionStoreFromConfig(a.settings.Negotiate, a.sessions), nil
}

// Close releases the session worker and external connections.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
