// Package mobiledetect populates the mobile device header for downstream
// format negotiation.
//
// The middleware inspects the User-Agent and a couple of WAP era headers and
// sets X-Mobile-Device on the inbound request:
//
//   - a targeted device (iphone, ipod, ipad, android by default) sets the
//     lowercase device name, e.g. "iphone";
//   - a WAP profile header, a WAP Accept type or a generic mobile keyword
//     sets "true";
//   - anything else leaves the header absent.
//
// A header already present on the request is never overwritten, so a proxy
// or CDN that performs its own detection wins.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(mobiledetect.Middleware())
//
// Extra targeted devices can be registered:
//
//	r.Use(mobiledetect.Middleware(mobiledetect.WithTargeted("blackberry", "webos")))
package mobiledetect
