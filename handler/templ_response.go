package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type templResponse struct {
	partial templ.Component
	full    templ.Component
	options []PatchOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// Templ renders a templ component. DataStar requests receive it as an
// element patch.
func Templ(component templ.Component, opts ...PatchOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplPartial renders partial for DataStar requests and full otherwise.
//
//	return handler.TemplPartial(
//		components.FormatSwitch(neg),
//		components.SettingsPage(neg),
//		handler.WithTarget("#format-switch"),
//	)
func TemplPartial(partial, full templ.Component, opts ...PatchOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
