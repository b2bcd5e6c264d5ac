package negotiate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/negotiate"
)

// memoryStore is a single-client preference store.
type memoryStore struct {
	mu    sync.Mutex
	prefs negotiate.Preferences
	saves int
	err   error
}

func (s *memoryStore) Load(*http.Request) negotiate.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

func (s *memoryStore) Save(_ http.ResponseWriter, _ *http.Request, p negotiate.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.err != nil {
		return s.err
	}
	s.prefs = p.Clone()
	return nil
}

func (s *memoryStore) snapshot() (negotiate.Preferences, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone(), s.saves
}

type pages struct{ exempt []string }

func (p pages) ExemptActions() []string { return p.exempt }

// serve runs one request through the action and returns the negotiation seen by the handler.
func serve(t *testing.T, n *negotiate.Negotiator, action string, req *http.Request) (*negotiate.Negotiation, *httptest.ResponseRecorder) {
	t.Helper()
	var got *negotiate.Negotiation
	h := n.Action(action)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = negotiate.FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotNil(t, got)
	return got, rec
}

func mobileRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", iphoneUA)
	req.Header.Set("X-Mobile-Device", "iPhone")
	return req
}

func tabletRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", ipadUA)
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		aware   negotiate.NegotiationAware
		store   negotiate.PreferenceStore
		opts    []negotiate.Option
		wantErr bool
	}{
		{name: "defaults", aware: pages{}, store: &memoryStore{}},
		{name: "nil aware", store: &memoryStore{}},
		{name: "exempt actions", aware: pages{exempt: []string{"feed", "api"}}, store: &memoryStore{}},
		{name: "nil store", aware: pages{}, wantErr: true},
		{name: "empty exempt action", aware: pages{exempt: []string{"feed", " "}}, store: &memoryStore{}, wantErr: true},
		{name: "empty option action", store: &memoryStore{}, opts: []negotiate.Option{negotiate.WithExemptActions("")}, wantErr: true},
		{name: "forcing html", store: &memoryStore{}, opts: []negotiate.Option{negotiate.WithForcedFormat(negotiate.FormatHTML)}, wantErr: true},
		{
			name:    "forcing without auto format",
			store:   &memoryStore{},
			opts:    []negotiate.Option{negotiate.WithAutoFormat(false), negotiate.WithForcedFormat(negotiate.FormatMobile)},
			wantErr: true,
		},
		{name: "empty device header", store: &memoryStore{}, opts: []negotiate.Option{negotiate.WithDeviceHeader("")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := negotiate.Register(tt.aware, tt.store, tt.opts...)
			if tt.wantErr {
				assert.ErrorIs(t, err, negotiate.ErrInvalidConfig)
				assert.Nil(t, n)
				assert.Panics(t, func() { negotiate.MustRegister(tt.aware, tt.store, tt.opts...) })
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, n)
		})
	}
}

func TestNegotiator_Action(t *testing.T) {
	t.Parallel()

	t.Run("mobile device with empty session", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)

		neg, rec := serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
		assert.True(t, neg.InMobileView())
		assert.False(t, neg.InTabletView())

		prefs, saves := store.snapshot()
		require.NotNil(t, prefs.Mobile)
		assert.True(t, *prefs.Mobile)
		assert.Equal(t, 1, saves)
		assert.Equal(t, []string{"User-Agent", "X-Mobile-Device"}, rec.Header().Values("Vary"))
	})

	t.Run("opted out session stays html", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{prefs: negotiate.Preferences{Mobile: negotiate.Bool(false)}}
		n := negotiate.MustRegister(pages{}, store)

		for range 3 {
			neg, _ := serve(t, n, "index", mobileRequest())
			assert.Equal(t, negotiate.FormatHTML, neg.Format())
		}
		_, saves := store.snapshot()
		assert.Zero(t, saves)
	})

	t.Run("second request does not rewrite preference", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)

		serve(t, n, "index", mobileRequest())
		neg, _ := serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Format())

		_, saves := store.snapshot()
		assert.Equal(t, 1, saves)
	})

	t.Run("device header whitespace", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)

		req := mobileRequest()
		req.Header.Set("X-Mobile-Device", " \t ")
		neg, _ := serve(t, n, "index", req)
		assert.Equal(t, negotiate.FormatHTML, neg.Format())
		assert.False(t, neg.IsMobileDevice())
		id, ok := neg.DeviceIdentifier()
		assert.False(t, ok)
		assert.Empty(t, id)
		_, saves := store.snapshot()
		assert.Zero(t, saves)

		req = mobileRequest()
		req.Header.Set("X-Mobile-Device", "  iPhone ")
		neg, _ = serve(t, n, "index", req)
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
		assert.True(t, neg.IsMobileDevice())
		id, ok = neg.DeviceIdentifier()
		assert.True(t, ok)
		assert.Equal(t, "iPhone", id)
	})

	t.Run("tablet", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)

		neg, _ := serve(t, n, "index", tabletRequest())
		assert.Equal(t, negotiate.FormatTablet, neg.Format())
		assert.True(t, neg.IsTabletDevice())
		assert.False(t, neg.IsMobileDevice())

		prefs, _ := store.snapshot()
		assert.True(t, *prefs.Tablet)
		assert.Nil(t, prefs.Mobile)
	})

	t.Run("exempt action", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{exempt: []string{"feed"}}, store)

		neg, _ := serve(t, n, "feed", mobileRequest())
		assert.Equal(t, negotiate.FormatHTML, neg.Format())
		assert.True(t, neg.IsExempt())
		assert.True(t, neg.IsMobileDevice())
		assert.Equal(t, "feed", neg.Action())

		neg, _ = serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
	})

	t.Run("exempt actions are per negotiator", func(t *testing.T) {
		t.Parallel()
		a := negotiate.MustRegister(pages{exempt: []string{"index"}}, &memoryStore{})
		b := negotiate.MustRegister(pages{}, &memoryStore{})

		negA, _ := serve(t, a, "index", mobileRequest())
		negB, _ := serve(t, b, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatHTML, negA.Format())
		assert.Equal(t, negotiate.FormatMobile, negB.Format())
		assert.Equal(t, []string{"index"}, a.Policy().Actions())
	})

	t.Run("xhr requests", func(t *testing.T) {
		t.Parallel()
		headers := []map[string]string{
			{"X-Requested-With": "XMLHttpRequest"},
			{"HX-Request": "true"},
			{"Accept": "text/event-stream"},
			{"Datastar-Request": "true"},
		}
		for _, h := range headers {
			store := &memoryStore{}
			n := negotiate.MustRegister(pages{}, store)
			req := mobileRequest()
			for k, v := range h {
				req.Header.Set(k, v)
			}

			neg, _ := serve(t, n, "index", req)
			assert.Equal(t, negotiate.FormatHTML, neg.Format(), "headers %v", h)
			assert.True(t, neg.IsXHR())
			_, saves := store.snapshot()
			assert.Zero(t, saves)
		}
	})

	t.Run("htmx boosted navigation is negotiated", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{}, &memoryStore{})
		req := mobileRequest()
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Boosted", "true")

		neg, _ := serve(t, n, "index", req)
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
	})

	t.Run("explicit format parameter is kept", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{}, &memoryStore{})
		req := mobileRequest()
		req.URL.RawQuery = "format=json"

		neg, _ := serve(t, n, "index", req)
		assert.Equal(t, negotiate.Format("json"), neg.Format())
	})

	t.Run("auto format disabled", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store, negotiate.WithAutoFormat(false))

		neg, _ := serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatHTML, neg.Format())
		assert.True(t, neg.IsMobileDevice())
	})

	t.Run("forced format", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store, negotiate.WithForcedFormat(negotiate.FormatMobile))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", desktopUA)
		neg, _ := serve(t, n, "index", req)
		assert.Equal(t, negotiate.FormatMobile, neg.Format())

		prefs, _ := store.snapshot()
		assert.True(t, *prefs.Mobile)
	})

	t.Run("custom device header", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{}, &memoryStore{}, negotiate.WithDeviceHeader("x-device"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Device", "android")

		neg, _ := serve(t, n, "index", req)
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
		id, ok := neg.DeviceIdentifier()
		assert.True(t, ok)
		assert.Equal(t, "android", id)
	})

	t.Run("store failure still applies format", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{err: errors.New("redis down")}
		n := negotiate.MustRegister(pages{}, store)

		neg, _ := serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
	})

	t.Run("middleware", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{exempt: []string{"feed"}}, &memoryStore{})

		var got negotiate.Format
		h := n.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = negotiate.FromContext(r.Context()).Format()
		}))
		h.ServeHTTP(httptest.NewRecorder(), tabletRequest())
		assert.Equal(t, negotiate.FormatTablet, got)
	})
}

func TestNegotiation_ForceFormat(t *testing.T) {
	t.Parallel()

	t.Run("forces tablet without touching mobile preference", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{prefs: negotiate.Preferences{Mobile: negotiate.Bool(false)}}
		n := negotiate.MustRegister(pages{}, store)

		neg, _ := serve(t, n, "index", mobileRequest())
		require.NoError(t, neg.ForceFormat(context.Background(), negotiate.FormatTablet))
		assert.Equal(t, negotiate.FormatTablet, neg.Format())

		prefs, _ := store.snapshot()
		assert.False(t, *prefs.Mobile)
		assert.True(t, *prefs.Tablet)
	})

	t.Run("keeps an existing preference", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{prefs: negotiate.Preferences{Mobile: negotiate.Bool(false)}}
		n := negotiate.MustRegister(pages{}, store)

		neg, _ := serve(t, n, "index", mobileRequest())
		require.NoError(t, neg.ForceFormat(context.Background(), negotiate.FormatMobile))
		assert.Equal(t, negotiate.FormatMobile, neg.Format())

		prefs, saves := store.snapshot()
		assert.False(t, *prefs.Mobile)
		assert.Zero(t, saves)
	})

	t.Run("no-op for xhr", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")

		neg, _ := serve(t, n, "index", req)
		require.NoError(t, neg.ForceFormat(context.Background(), negotiate.FormatMobile))
		assert.Equal(t, negotiate.FormatHTML, neg.Format())
		assert.True(t, neg.Preferences().IsZero())
	})

	t.Run("rejects html", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{}, &memoryStore{})
		neg, _ := serve(t, n, "index", mobileRequest())
		assert.ErrorIs(t, neg.ForceFormat(context.Background(), negotiate.FormatHTML), negotiate.ErrUnsupportedFormat)
	})
}

func TestNegotiation_Preferences(t *testing.T) {
	t.Parallel()

	t.Run("opt out then reset", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)
		ctx := context.Background()

		neg, _ := serve(t, n, "index", mobileRequest())
		require.NoError(t, neg.SetPreference(ctx, negotiate.FormatMobile, false))
		assert.Equal(t, negotiate.FormatMobile, neg.Format(), "takes effect on the next negotiation")

		neg, _ = serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatHTML, neg.Format())

		require.NoError(t, neg.ResetPreferences(ctx))
		neg, _ = serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Format())
	})

	t.Run("rejects html", func(t *testing.T) {
		t.Parallel()
		n := negotiate.MustRegister(pages{}, &memoryStore{})
		neg, _ := serve(t, n, "index", mobileRequest())
		assert.ErrorIs(t, neg.SetPreference(context.Background(), negotiate.FormatHTML, true), negotiate.ErrUnsupportedFormat)
	})

	t.Run("negotiate is idempotent", func(t *testing.T) {
		t.Parallel()
		store := &memoryStore{}
		n := negotiate.MustRegister(pages{}, store)

		neg, _ := serve(t, n, "index", mobileRequest())
		assert.Equal(t, negotiate.FormatMobile, neg.Negotiate(context.Background()))
		_, saves := store.snapshot()
		assert.Equal(t, 1, saves)
	})
}

func TestFromContext_Detached(t *testing.T) {
	t.Parallel()

	neg := negotiate.FromContext(context.Background())
	assert.Equal(t, negotiate.FormatHTML, neg.Format())
	assert.False(t, neg.IsMobileDevice())
	assert.False(t, neg.IsTabletDevice())
	_, ok := neg.DeviceIdentifier()
	assert.False(t, ok)
	assert.ErrorIs(t, neg.ForceFormat(context.Background(), negotiate.FormatMobile), negotiate.ErrNoStore)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := negotiate.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	n := negotiate.MustRegister(pages{}, &memoryStore{})
	var attrValue string
	h := n.Action("index")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		attr, ok := extract(r.Context())
		require.True(t, ok)
		assert.Equal(t, "format", attr.Key)
		attrValue = attr.Value.String()
	}))
	h.ServeHTTP(httptest.NewRecorder(), tabletRequest())
	assert.Equal(t, "tablet", attrValue)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := negotiate.DefaultConfig()
	cfg.DeviceHeader = "X-Device-Name"
	n, err := negotiate.NewFromConfig(cfg, pages{}, &memoryStore{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Device-Name", "blackberry")
	neg, _ := serve(t, n, "index", req)
	assert.Equal(t, negotiate.FormatMobile, neg.Format())

	cfg = negotiate.DefaultConfig()
	cfg.ForcedFormat = "tablet"
	cfg.ExemptActions = []string{"feed"}
	n, err = negotiate.NewFromConfig(cfg, nil, &memoryStore{})
	require.NoError(t, err)
	assert.True(t, n.Policy().IsExempt("feed"))

	neg, _ = serve(t, n, "index", httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, negotiate.FormatTablet, neg.Format())

	cfg.ForcedFormat = "xml"
	_, err = negotiate.NewFromConfig(cfg, nil, &memoryStore{})
	assert.ErrorIs(t, err, negotiate.ErrInvalidConfig)
}
