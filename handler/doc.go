// Package handler adapts typed handlers to net/http.
//
// A HandlerFunc receives a Context and a request value filled by binders,
// and returns a Response. Responses know the request: View renders a named
// template at the format negotiated for the client and turns into an element
// patch for DataStar requests; Templ does the same for templ components.
//
//	resolve := handler.HandlerFunc[handler.Context, resolveRequest](
//		func(ctx handler.Context, req resolveRequest) handler.Response {
//			return handler.View(renderer, render.View{Prefix: req.Prefix, Name: req.Name})
//		},
//	)
//	r.With(negotiator.Action("resolve")).Get("/v/{prefix}/{name}", handler.Wrap(resolve,
//		handler.WithBinders[handler.Context, resolveRequest](binder.Path(chi.URLParam), binder.Query()),
//		handler.WithErrorHandler[handler.Context, resolveRequest](handler.NewErrorHandler(log, handler.ErrorHandlerConfig{Renderer: renderer})),
//	))
//
// Errors from binders and responses reach the ErrorHandler. NewErrorHandler
// maps HTTPError, missing templates and bind failures to status codes and
// renders errors/error at the negotiated format.
package handler
