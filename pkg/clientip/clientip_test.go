package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devicekit/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		trusted    []string
		remoteAddr string
		want       string
	}{
		{
			name:       "first trusted header wins",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.195", "X-Forwarded-For": "192.168.1.1"},
			trusted:    clientip.DefaultHeaders,
			remoteAddr: "172.16.0.1:54321",
			want:       "203.0.113.195",
		},
		{
			name:       "leftmost valid forwarded entry",
			headers:    map[string]string{"X-Forwarded-For": "unknown, 198.51.100.178, 203.0.113.195"},
			trusted:    clientip.DefaultHeaders,
			remoteAddr: "10.0.0.1:54321",
			want:       "198.51.100.178",
		},
		{
			name:       "untrusted headers are ignored",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.178"},
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "invalid header falls through",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			trusted:    clientip.DefaultHeaders,
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "ipv4 mapped address is unmapped",
			remoteAddr: "[::ffff:192.0.2.1]:80",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.7",
			want:       "192.0.2.7",
		},
		{
			name:       "nothing valid",
			remoteAddr: "garbage",
			want:       "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(req, tt.trusted...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware("X-Real-IP")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "198.51.100.9", got)

	attr, ok := clientip.LoggerExtractor()(clientip.WithContext(context.Background(), got))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)

	_, ok = clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
