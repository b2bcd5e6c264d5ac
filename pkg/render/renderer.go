package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/devicekit/pkg/assets"
	"github.com/dmitrymomot/devicekit/pkg/device"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// DefaultCacheKey is the cache key used unless WithCacheKey overrides it.
const DefaultCacheKey = "default"

// Renderer renders views at the format negotiated for the request.
type Renderer struct {
	resolver       *views.Resolver
	cacheKey       string
	stylesheets    assets.StylesheetFunc
	stylesheetsDir string
	funcs          template.FuncMap
	logger         *slog.Logger
}

// New creates a renderer resolving templates through resolver.
func New(resolver *views.Resolver, opts ...Option) *Renderer {
	if resolver == nil {
		panic("render: nil resolver")
	}
	r := &Renderer{
		resolver:    resolver,
		cacheKey:    DefaultCacheKey,
		stylesheets: assets.LinkTags(""),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HTML renders v and writes it with status. Nothing is written when
// rendering fails.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, v View) error {
	var buf bytes.Buffer
	if err := r.Render(req.Context(), &buf, v); err != nil {
		return err
	}

	neg := negotiate.FromContext(req.Context())
	h := w.Header()
	h.Set("Content-Type", neg.Format().ContentType())
	addVary(h, "User-Agent", device.Header)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Render writes v to out. The view is resolved at the negotiated format with
// fallback to html. The layout is resolved at the same format without
// fallback; a missing layout renders the view bare.
func (r *Renderer) Render(ctx context.Context, out io.Writer, v View) error {
	neg := negotiate.FromContext(ctx)
	format := neg.Format().String()

	tpl, err := r.resolver.ResolveOne(ctx, views.Query{
		Name:     v.Name,
		Prefix:   v.Prefix,
		Format:   format,
		Locals:   v.Locals,
		CacheKey: r.cacheKey,
	})
	if err != nil {
		return err
	}

	body, err := r.execute(scope{ctx: ctx, neg: neg, prefix: v.Prefix}, tpl, v.Data)
	if err != nil {
		return err
	}

	if v.Layout != "" {
		layout, err := r.resolver.ResolveOne(ctx, views.Query{
			Name:     v.Layout,
			Prefix:   views.LayoutsPrefix,
			Format:   format,
			CacheKey: r.cacheKey,
		})
		switch {
		case errors.Is(err, views.ErrNotFound):
			r.logger.DebugContext(ctx, "layout not found, rendering bare view",
				logger.Template(views.LayoutsPrefix+"/"+v.Layout),
				logger.ViewFormat(format),
			)
		case err != nil:
			return err
		default:
			body, err = r.execute(scope{ctx: ctx, neg: neg, prefix: v.Prefix, content: body}, layout, v.Data)
			if err != nil {
				return err
			}
		}
	}

	_, err = io.WriteString(out, string(body))
	return err
}

// execute renders one template. Layout content is exposed through the
// "yield" helper or, for templ components, as children.
func (r *Renderer) execute(s scope, tpl *views.Template, data any) (template.HTML, error) {
	var buf bytes.Buffer
	switch {
	case tpl.HTML != nil:
		t, err := tpl.HTML.Clone()
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrExecute, tpl.Identifier, err)
		}
		if err := t.Funcs(r.helpers(s)).Execute(&buf, data); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrExecute, tpl.Identifier, err)
		}
	case tpl.Component != nil:
		ctx := withData(s.ctx, data)
		if s.content != "" {
			ctx = templ.WithChildren(ctx, templ.Raw(string(s.content)))
		}
		if err := tpl.Component.Render(ctx, &buf); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrExecute, tpl.Identifier, err)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrNoPayload, tpl.Identifier)
	}
	return template.HTML(buf.String()), nil
}

func addVary(h http.Header, values ...string) {
	present := make([]string, 0, 4)
	for _, line := range h.Values("Vary") {
		for v := range strings.SplitSeq(line, ",") {
			present = append(present, http.CanonicalHeaderKey(strings.TrimSpace(v)))
		}
	}
	for _, v := range values {
		if !slices.Contains(present, http.CanonicalHeaderKey(v)) {
			h.Add("Vary", v)
		}
	}
}
