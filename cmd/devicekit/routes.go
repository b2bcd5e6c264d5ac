package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/devicekit/handler"
	"github.com/dmitrymomot/devicekit/pkg/binder"
	"github.com/dmitrymomot/devicekit/pkg/clientip"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/ratelimiter"
	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/requestid"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

const readinessTimeout = 2 * time.Second

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(a.settings.ClientIP.Headers...),
		environment.Middleware(a.env),
		a.detector.Middleware,
	)
	if a.sessions != nil {
		r.Use(a.sessions.Middleware)
	}

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.log, readinessTimeout, a.checks))

	if url := strings.TrimRight(a.settings.Assets.StylesheetsURL, "/"); url != "" {
		r.Handle(url+"/*", http.StripPrefix(url, http.FileServer(http.Dir(a.settings.Assets.StylesheetsDir))))
	}

	errs := handler.NewErrorHandler(a.log, handler.ErrorHandlerConfig{Renderer: a.renderer})
	action := func(name string) chi.Router {
		return r.With(a.negotiator.Action(name), accessLog(a.log))
	}
	// Preference writes touch the session store, so they are throttled per client.
	writes := func(name string) chi.Router {
		return action(name).With(a.throttle(errs))
	}

	action(actionResolve).Get("/_views/*", handler.Wrap(a.resolveView,
		handler.WithBinders[handler.Context, resolveRequest](binder.Path(chi.URLParam), binder.Query()),
		handler.WithErrorHandler[handler.Context, resolveRequest](errs),
	))
	writes(actionReset).Post("/view/reset", handler.Wrap(a.resetPreferences,
		handler.WithErrorHandler[handler.Context, struct{}](errs),
	))
	writes(actionPreference).Post("/view/{format}", handler.Wrap(a.updatePreference,
		handler.WithBinders[handler.Context, preferenceRequest](binder.Path(chi.URLParam), binder.Form()),
		handler.WithErrorHandler[handler.Context, preferenceRequest](errs),
	))
	action(actionPage).Get("/*", handler.Wrap(a.showPage,
		handler.WithBinders[handler.Context, pageRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, pageRequest](errs),
	))
	return r
}

// throttle limits requests per client address. It is a no-op when rate
// limiting is disabled.
func (a *app) throttle(errs handler.ErrorHandler[handler.Context]) func(http.Handler) http.Handler {
	if a.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	limited := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return errorResponse{handler.ErrTooManyRequests}
	}, handler.WithErrorHandler[handler.Context, struct{}](errs))

	return ratelimiter.Middleware(a.limiter,
		func(r *http.Request) string { return clientip.FromContext(r.Context()) },
		ratelimiter.WithLimitedHandler(limited),
		ratelimiter.WithLogger(a.log.With(logger.Component("ratelimiter"))),
	)
}

type pageRequest struct {
	Path string `path:"*"`
}

// pageView maps "/" to home/index, "/docs" to docs/index and "/docs/intro"
// to docs/intro. Partials and dot segments are never served.
func pageView(path string) (render.View, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return render.View{Prefix: "home", Name: "index", Layout: "application"}, true
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" || strings.HasPrefix(s, "_") || strings.HasPrefix(s, ".") {
			return render.View{}, false
		}
	}
	if len(segments) == 1 {
		return render.View{Prefix: segments[0], Name: "index", Layout: "application"}, true
	}
	last := len(segments) - 1
	return render.View{
		Prefix: strings.Join(segments[:last], "/"),
		Name:   segments[last],
		Layout: "application",
	}, true
}

func (a *app) showPage(ctx handler.Context, req pageRequest) handler.Response {
	v, ok := pageView(req.Path)
	if !ok {
		return errorResponse{handler.ErrNotFound}
	}
	return handler.View(a.renderer, v, handler.WithTarget("main"))
}

type preferenceRequest struct {
	Format string `path:"format"`
	On     *bool  `form:"on"`
}

func (a *app) updatePreference(ctx handler.Context, req preferenceRequest) handler.Response {
	on := req.On == nil || *req.On
	if err := ctx.Negotiation().SetPreference(ctx, negotiate.Format(req.Format), on); err != nil {
		return errorResponse{err}
	}
	return handler.RedirectBack(ctx.Request(), "/")
}

func (a *app) resetPreferences(ctx handler.Context, _ struct{}) handler.Response {
	if err := ctx.Negotiation().ResetPreferences(ctx); err != nil {
		return errorResponse{err}
	}
	return handler.RedirectBack(ctx.Request(), "/")
}

type resolveRequest struct {
	Path    string   `path:"*"`
	Format  string   `query:"format"`
	Partial bool     `query:"partial"`
	Locals  []string `query:"locals"`
}

func (a *app) resolveView(ctx handler.Context, req resolveRequest) handler.Response {
	q := resolveQuery(req.Path, req.Format, req.Partial, req.Locals)
	if q.Format == "" {
		q.Format = ctx.Negotiation().Format().String()
	}
	q.CacheKey = render.DefaultCacheKey

	templates, err := a.resolver.Resolve(ctx, q)
	if err != nil {
		return errorResponse{err}
	}
	return handler.JSON(describe(q, templates), handler.WithJSONMeta(map[string]any{
		"caching": a.resolver.Caching(),
		"cache":   a.resolver.CacheStats(),
	}))
}

// resolveQuery splits "prefix/name" into a query.
func resolveQuery(path, format string, partial bool, locals []string) views.Query {
	path = strings.Trim(path, "/")
	q := views.Query{Name: path, Format: format, Partial: partial, Locals: locals}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		q.Prefix, q.Name = path[:i], path[i+1:]
	}
	return q
}

// errorResponse hands err to the route's error handler.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }
