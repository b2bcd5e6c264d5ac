package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/devicekit/pkg/cookie"
)

// Manager handles the session life-cycle.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookies       *cookie.Manager
	cookieOptions []cookie.Option

	activity  chan activityUpdate
	done      chan struct{}
	closeOnce sync.Once
}

type activityUpdate struct {
	token string
	at    time.Time
}

// New creates a manager. Without a transport option a cookie manager is
// required; New panics otherwise.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:   DefaultConfig(),
		activity: make(chan activityUpdate, 1000),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		if m.cookies == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	go m.activityWorker()
	return m
}

// Get returns the session of r.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Ensure returns the session of r, creating one when missing or expired.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if session, err := m.Get(ctx, r); err == nil {
		if time.Since(session.LastActivityAt) >= m.config.ActivityUpdateThreshold {
			m.queueActivity(session.Token)
		}
		return session, nil
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	session := NewSession(token, m.expiry(now, now).Sub(now))
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, session.Token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}
	return session, nil
}

// Update applies fn to the session of the request and saves it. The session
// stored in ctx by the middleware is reused; otherwise one is ensured.
func (m *Manager) Update(ctx context.Context, w http.ResponseWriter, r *http.Request, fn func(*Session)) error {
	session, ok := FromContext(ctx)
	if !ok || session == nil {
		var err error
		if session, err = m.Ensure(ctx, w, r); err != nil {
			return err
		}
	}
	fn(session)
	return m.store.Update(ctx, session)
}

// Refresh extends the session expiry and re-issues the token.
func (m *Manager) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	session, err := m.Get(ctx, r)
	if err != nil {
		return err
	}
	session.ExpiresAt = m.expiry(session.CreatedAt, time.Now())
	session.Touch()
	if err := m.store.Update(ctx, session); err != nil {
		return err
	}
	return m.transport.SetToken(w, session.Token, m.config.IdleTimeout)
}

// Destroy deletes the session and clears the token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Close stops the activity worker after draining queued updates.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

// expiry is the earlier of the idle deadline and the maximum lifetime.
func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	if limit := createdAt.Add(m.config.MaxLifetime); limit.Before(idle) {
		return limit
	}
	return idle
}

func (m *Manager) queueActivity(token string) {
	select {
	case m.activity <- activityUpdate{token: token, at: time.Now()}:
	default:
		// queue full, drop the update
	}
}

func (m *Manager) activityWorker() {
	for {
		select {
		case u := <-m.activity:
			_ = m.store.UpdateActivity(context.Background(), u.token, u.at)
		case <-m.done:
			for {
				select {
				case u := <-m.activity:
					_ = m.store.UpdateActivity(context.Background(), u.token, u.at)
				default:
					return
				}
			}
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
