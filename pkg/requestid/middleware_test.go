package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/requestid"
)

func run(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var id string
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		id = requestid.FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return id, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "missing", header: "", reuse: false},
		{name: "valid", header: "req_123-abc", reuse: true},
		{name: "invalid characters", header: "bad id;drop", reuse: false},
		{name: "too long", header: strings.Repeat("a", 129), reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(requestid.Header, tt.header)
			}

			id, rec := run(t, requestid.Middleware, req)
			assert.Equal(t, id, rec.Header().Get(requestid.Header))
			if tt.reuse {
				assert.Equal(t, tt.header, id)
				return
			}
			_, err := uuid.Parse(id)
			require.NoError(t, err)
		})
	}
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	mw := requestid.New(requestid.WithHeader("X-Trace-ID"), requestid.WithGenerator(func() string { return "fixed" }))
	id, rec := run(t, mw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fixed", id)
	assert.Equal(t, "fixed", rec.Header().Get("X-Trace-ID"))

	assert.Panics(t, func() { requestid.WithHeader("") })
	assert.Panics(t, func() { requestid.WithGenerator(nil) })
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
