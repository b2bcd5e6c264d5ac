package negotiate

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/devicekit/pkg/cookie"
	"github.com/dmitrymomot/devicekit/pkg/session"
)

const (
	DefaultMobileKey  = "mobile_view"
	DefaultTabletKey  = "tablet_view"
	DefaultCookieName = "device_view"
)

// PreferenceStore persists view preferences per client. Load never fails:
// unreadable or missing data yields unset preferences.
type PreferenceStore interface {
	Load(r *http.Request) Preferences
	Save(w http.ResponseWriter, r *http.Request, p Preferences) error
}

// SessionStore keeps preferences in the server-side session.
type SessionStore struct {
	sessions  *session.Manager
	mobileKey string
	tabletKey string
}

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithSessionKeys overrides the session keys holding the preferences.
func WithSessionKeys(mobile, tablet string) SessionStoreOption {
	if mobile == "" || tablet == "" || mobile == tablet {
		panic("WithSessionKeys: keys must be distinct and non-empty")
	}
	return func(s *SessionStore) {
		s.mobileKey = mobile
		s.tabletKey = tablet
	}
}

// NewSessionStore creates a store backed by sessions.
func NewSessionStore(sessions *session.Manager, opts ...SessionStoreOption) *SessionStore {
	if sessions == nil {
		panic("negotiate: nil session manager")
	}
	s := &SessionStore{sessions: sessions, mobileKey: DefaultMobileKey, tabletKey: DefaultTabletKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionStoreFromConfig creates a session store using the configured keys.
func NewSessionStoreFromConfig(cfg Config, sessions *session.Manager) *SessionStore {
	if cfg.SessionMobileKey == "" || cfg.SessionTabletKey == "" {
		return NewSessionStore(sessions)
	}
	return NewSessionStore(sessions, WithSessionKeys(cfg.SessionMobileKey, cfg.SessionTabletKey))
}

func (s *SessionStore) Load(r *http.Request) Preferences {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		var err error
		if sess, err = s.sessions.Get(r.Context(), r); err != nil {
			return Preferences{}
		}
	}
	return Preferences{
		Mobile: boolValue(sess, s.mobileKey),
		Tablet: boolValue(sess, s.tabletKey),
	}
}

func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, p Preferences) error {
	return s.sessions.Update(r.Context(), w, r, func(sess *session.Session) {
		putBool(sess, s.mobileKey, p.Mobile)
		putBool(sess, s.tabletKey, p.Tablet)
	})
}

func boolValue(sess *session.Session, key string) *bool {
	if v, ok := sess.GetBool(key); ok {
		return Bool(v)
	}
	return nil
}

func putBool(sess *session.Session, key string, v *bool) {
	if v == nil {
		sess.Delete(key)
		return
	}
	sess.Set(key, *v)
}

// CookieStore keeps preferences in a signed cookie, for deployments without
// server-side sessions.
type CookieStore struct {
	cookies *cookie.Manager
	name    string
	opts    []cookie.Option
}

// NewCookieStore creates a store writing the cookie name through cookies.
func NewCookieStore(cookies *cookie.Manager, name string, opts ...cookie.Option) *CookieStore {
	if cookies == nil {
		panic("negotiate: nil cookie manager")
	}
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieStore{cookies: cookies, name: name, opts: opts}
}

func (s *CookieStore) Load(r *http.Request) Preferences {
	raw, err := s.cookies.GetSigned(r, s.name)
	if err != nil {
		return Preferences{}
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Preferences{}
	}
	return Preferences{
		Mobile: parseBool(values.Get("mobile")),
		Tablet: parseBool(values.Get("tablet")),
	}
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, p Preferences) error {
	if p.IsZero() {
		s.cookies.Delete(w, s.name)
		return nil
	}
	values := url.Values{}
	if p.Mobile != nil {
		values.Set("mobile", strconv.FormatBool(*p.Mobile))
	}
	if p.Tablet != nil {
		values.Set("tablet", strconv.FormatBool(*p.Tablet))
	}
	return s.cookies.SetSigned(w, s.name, values.Encode(), s.opts...)
}

func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return Bool(v)
}
