package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default request id header.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type options struct {
	header   string
	generate func() string
}

// Option configures the middleware.
type Option func(*options)

// WithHeader reads and echoes the id in a custom header. It panics on an
// empty name.
func WithHeader(name string) Option {
	if name == "" {
		panic("requestid: header name cannot be empty")
	}
	return func(o *options) { o.header = name }
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	if fn == nil {
		panic("requestid: generator cannot be nil")
	}
	return func(o *options) { o.generate = fn }
}

// New returns middleware that stores a request id in the context and echoes
// it in the response. A valid client supplied id is reused.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
