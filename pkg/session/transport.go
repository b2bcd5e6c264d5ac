package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/devicekit/pkg/cookie"
)

// Transport carries the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport keeps the token in an encrypted cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
	options []cookie.Option
}

// NewCookieTransport creates a cookie transport.
func NewCookieTransport(cookies *cookie.Manager, name string, secure bool, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, secure: secure, options: opts}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.name)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(t.secure),
	}, t.options...)
	return t.cookies.SetEncrypted(w, t.name, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}

// HeaderTransport keeps the token in a request/response header, for API
// clients that do not store cookies.
type HeaderTransport struct {
	name   string
	prefix string
}

// NewHeaderTransport creates a header transport. Values are prefixed with
// "Bearer " unless prefix says otherwise.
func NewHeaderTransport(name string, prefix ...string) *HeaderTransport {
	t := &HeaderTransport{name: name, prefix: "Bearer "}
	if len(prefix) > 0 {
		t.prefix = prefix[0]
	}
	return t
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimPrefix(r.Header.Get(t.name), t.prefix)
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.name, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.name+"-Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.name)
	w.Header().Del(t.name + "-Expires")
	return nil
}
