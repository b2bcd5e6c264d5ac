package handler

import (
	"bytes"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/devicekit/pkg/render"
)

// PatchOption configures a DataStar element patch.
type PatchOption = datastar.PatchElementOption

// WithTarget sets the selector the element patch is applied to.
func WithTarget(selector string) PatchOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the patch merges into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) PatchOption {
	return datastar.WithMode(mode)
}

type viewResponse struct {
	renderer *render.Renderer
	view     render.View
	status   int
	options  []PatchOption
}

func (v viewResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if v.renderer == nil {
		return ErrNilRenderer
	}
	if !IsDataStar(r) {
		return v.renderer.HTML(w, r, v.status, v.view)
	}

	// DataStar patches never carry the layout.
	view := v.view
	view.Layout = ""
	var buf bytes.Buffer
	if err := v.renderer.Render(r.Context(), &buf, view); err != nil {
		return err
	}
	return datastar.NewSSE(w, r).PatchElements(buf.String(), v.options...)
}

// View renders a named template at the negotiated format with status 200.
// DataStar requests receive the view without its layout as an element patch.
//
//	return handler.View(renderer, render.View{
//		Prefix: "home",
//		Name:   "index",
//		Layout: "application",
//		Data:   page,
//	}, handler.WithTarget("#main"))
func View(renderer *render.Renderer, v render.View, opts ...PatchOption) Response {
	return viewResponse{renderer: renderer, view: v, status: http.StatusOK, options: opts}
}

// ViewWithStatus is View with a custom status code.
func ViewWithStatus(renderer *render.Renderer, status int, v render.View, opts ...PatchOption) Response {
	return viewResponse{renderer: renderer, view: v, status: status, options: opts}
}
