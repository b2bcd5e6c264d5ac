// Package negotiate picks the response format of a request (html, mobile or
// tablet) from the client device and a preference persisted per client.
//
// A controller opts in by implementing NegotiationAware and registering a
// Negotiator. Each route is then wrapped with Action, which negotiates once
// per request and stores a *Negotiation in the request context:
//
//	type Pages struct{}
//
//	func (Pages) ExemptActions() []string { return []string{"feed"} }
//
//	n, err := negotiate.Register(Pages{}, negotiate.NewSessionStore(sessions))
//	if err != nil {
//		return err
//	}
//	r.With(n.Action("index")).Get("/", index)
//	r.With(n.Action("feed")).Get("/feed", feed) // never switched to mobile
//
//	func index(w http.ResponseWriter, r *http.Request) {
//		neg := negotiate.FromContext(r.Context())
//		if neg.InFormat(negotiate.FormatMobile) {
//			// ...
//		}
//	}
//
// # Rules
//
// Tablets are recognised first and switch to the tablet format; clients that
// carry a mobile device header switch to the mobile format. The first switch
// records a "true" preference. A stored "false" preference (the user chose the
// standard view) keeps the html format until the preference is reset.
// XHR-style requests (XMLHttpRequest, HTMX, DataStar), exempt actions and
// requests whose format is not html are never switched.
//
// Decide exposes the same rules as a pure function.
package negotiate
