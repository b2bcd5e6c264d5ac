package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/devicekit/pkg/binder"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/requestid"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// ErrorPageParams is the data passed to error pages and toasts.
type ErrorPageParams struct {
	Code       string
	Message    string
	Type       string // "error", "warning" or "info"
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Renderer renders the error view at the negotiated format, so mobile
	// clients get errors/error.mobile.tmpl when it exists.
	Renderer *render.Renderer

	// ErrorView is rendered with ErrorPageParams as data. Prefix defaults to
	// "errors" and Name to "error".
	ErrorView render.View

	// ErrorPage is used when Renderer is nil.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders DataStar failures. Default target is
	// "#toast-container" and mode is PatchPrepend.
	ErrorToast  func(ErrorPageParams) templ.Component
	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServerError.Key,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode, info.Code, info.Message = httpErr.Code, httpErr.Key, httpErr.Key
	case errors.Is(err, views.ErrNotFound):
		info.StatusCode, info.Code, info.Message = http.StatusNotFound, ErrNotFound.Key, "Page not found"
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Code, info.Message = http.StatusUnsupportedMediaType, ErrUnsupportedMedia.Key, err.Error()
	case errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, views.ErrInvalidQuery),
		errors.Is(err, negotiate.ErrUnsupportedFormat):
		info.StatusCode, info.Code, info.Message = http.StatusBadRequest, ErrBadRequest.Key, err.Error()
	}

	switch {
	case info.StatusCode >= http.StatusInternalServerError:
		info.Type, info.LogLevel = "error", slog.LevelError
	case info.StatusCode >= http.StatusBadRequest:
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	default:
		info.Type, info.LogLevel = "info", slog.LevelInfo
	}
	return info
}

// NewErrorHandler creates an error handler that logs the failure and renders
// a toast for DataStar requests or an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if cfg.ErrorView.Prefix == "" {
		cfg.ErrorView.Prefix = "errors"
	}
	if cfg.ErrorView.Name == "" {
		cfg.ErrorView.Name = "error"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(err)
		params := ErrorPageParams{
			Code:       info.Code,
			Message:    info.Message,
			Type:       info.Type,
			StatusCode: info.StatusCode,
			RequestID:  requestid.FromContext(r.Context()),
			RetryURL:   r.URL.Path,
		}

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.ViewFormat(ctx.Negotiation().Format().String()),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				log.WarnContext(r.Context(), "no error toast configured", logger.Component("error_handler"))
				return
			}
			resp := Templ(cfg.ErrorToast(params), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if body, ok := renderErrorPage(ctx, cfg, params, log); ok {
			w := ctx.ResponseWriter()
			w.Header().Set("Content-Type", ctx.Negotiation().Format().ContentType())
			w.WriteHeader(info.StatusCode)
			_, _ = body.WriteTo(w)
			return
		}
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
	}
}

// renderErrorPage renders into a buffer so a failing page never leaves a
// partial response behind.
func renderErrorPage(ctx Context, cfg ErrorHandlerConfig, params ErrorPageParams, log *slog.Logger) (*bytes.Buffer, bool) {
	var buf bytes.Buffer
	var err error
	switch {
	case cfg.Renderer != nil:
		v := cfg.ErrorView
		v.Data = params
		err = cfg.Renderer.Render(ctx, &buf, v)
	case cfg.ErrorPage != nil:
		err = cfg.ErrorPage(params).Render(ctx, &buf)
	default:
		return nil, false
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to render error page",
			logger.Error(err),
			logger.Component("error_handler"),
		)
		return nil, false
	}
	return &buf, true
}
