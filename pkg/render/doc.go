// Package render renders views at the format negotiated for a request.
//
// A Renderer resolves the view through a views.Resolver at the request's
// format (html, mobile or tablet) with fallback to html, then wraps it in a
// layout of exactly that format when one exists. html/template sources get
// these helpers:
//
//	in_mobile_view, in_tablet_view      the negotiated format
//	is_mobile_device, is_tablet_device  the client's device category
//	is_device "iphone"                  user agent substring match
//	mobile_device                       the raw mobile device header
//	js_enabled_mobile_device
//	current_format
//	stylesheet_link_tag "app"           link tags plus device variants
//	render_partial "item" .             renders "_item" at the same format
//	yield                               layout content
//
// Templates must be parsed with FuncStubs (or the same names) registered:
//
//	lookup := views.NewFSLookup(os.DirFS("views"), views.WithFuncs(render.FuncStubs()))
//	rnd := render.New(views.NewResolver(lookup))
//	err := rnd.HTML(w, r, http.StatusOK, render.View{Name: "index", Prefix: "home", Layout: "application"})
//
// templ components read the negotiation with negotiate.FromContext, the view
// data with Data and receive layout content as templ children.
package render
