package render

import (
	"html/template"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/devicekit/pkg/assets"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithCacheKey sets the cache key used for every resolution. An empty key
// disables the template cache for this renderer.
func WithCacheKey(key string) Option {
	return func(r *Renderer) { r.cacheKey = key }
}

// WithStylesheets sets the base stylesheet emitter and the directory holding
// device variants.
func WithStylesheets(base assets.StylesheetFunc, dir string) Option {
	if base == nil {
		panic("WithStylesheets: nil stylesheet func")
	}
	return func(r *Renderer) {
		r.stylesheets = base
		r.stylesheetsDir = dir
	}
}

// WithFuncs adds application helpers. Built-in helper names take precedence.
// The same functions must be available when templates are parsed.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		if r.funcs == nil {
			r.funcs = template.FuncMap{}
		}
		maps.Copy(r.funcs, funcs)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
