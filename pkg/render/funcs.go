package render

import (
	"context"
	"html/template"
	"maps"
	"path"

	"github.com/dmitrymomot/devicekit/pkg/assets"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// FuncStubs returns the helper names with placeholder implementations. Pass
// them to the template lookup so sources parse; the renderer binds the real
// helpers per request.
func FuncStubs() template.FuncMap {
	return template.FuncMap{
		"in_mobile_view":           func() bool { return false },
		"in_tablet_view":           func() bool { return false },
		"is_mobile_device":         func() bool { return false },
		"is_tablet_device":         func() bool { return false },
		"is_device":                func(string) bool { return false },
		"mobile_device":            func() string { return "" },
		"js_enabled_mobile_device": func() bool { return false },
		"current_format":           func() string { return "" },
		"stylesheet_link_tag":      func(...string) template.HTML { return "" },
		"render_partial":           func(string, ...any) (template.HTML, error) { return "", nil },
		"yield":                    func() template.HTML { return "" },
	}
}

// scope is the per-execution state the helpers close over.
type scope struct {
	ctx     context.Context
	neg     *negotiate.Negotiation
	prefix  string
	content template.HTML
}

func (r *Renderer) helpers(s scope) template.FuncMap {
	deviceName := func() string {
		id, _ := s.neg.DeviceIdentifier()
		return id
	}
	stylesheets := assets.Mobilize(r.stylesheets, r.stylesheetsDir, deviceName)

	funcs := template.FuncMap{
		"in_mobile_view":           s.neg.InMobileView,
		"in_tablet_view":           s.neg.InTabletView,
		"is_mobile_device":         s.neg.IsMobileDevice,
		"is_tablet_device":         s.neg.IsTabletDevice,
		"is_device":                s.neg.IsDevice,
		"mobile_device":            deviceName,
		"js_enabled_mobile_device": s.neg.IsJSEnabledMobileDevice,
		"current_format":           func() string { return s.neg.Format().String() },
		"stylesheet_link_tag":      func(sources ...string) template.HTML { return stylesheets(sources...) },
		"yield":                    func() template.HTML { return s.content },
		"render_partial": func(name string, data ...any) (template.HTML, error) {
			var d any
			if len(data) > 0 {
				d = data[0]
			}
			return r.partial(s, name, d)
		},
	}
	if len(r.funcs) > 0 {
		out := maps.Clone(r.funcs)
		maps.Copy(out, funcs)
		return out
	}
	return funcs
}

// partial renders "_name" at the negotiated format. A name containing a slash
// is looked up under its own directory instead of the current prefix.
func (r *Renderer) partial(s scope, name string, data any) (template.HTML, error) {
	prefix := s.prefix
	if dir, base := path.Split(name); dir != "" {
		prefix, name = path.Clean(dir), base
	}
	tpl, err := r.resolver.ResolveOne(s.ctx, views.Query{
		Name:     name,
		Prefix:   prefix,
		Partial:  true,
		Format:   s.neg.Format().String(),
		CacheKey: r.cacheKey,
	})
	if err != nil {
		return "", err
	}
	return r.execute(scope{ctx: s.ctx, neg: s.neg, prefix: prefix}, tpl, data)
}
