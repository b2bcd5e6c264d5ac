package clientip

import "net/http"

// Config lists the proxy headers trusted to carry the client address.
type Config struct {
	Headers []string `env:"CLIENTIP_HEADERS" envSeparator:"," envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`
}

// Middleware stores the client address in the request context. Without
// headers only RemoteAddr is used, which is right for servers exposed
// directly to clients.
func Middleware(headers ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := FromRequest(r, headers...)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ip)))
		})
	}
}
