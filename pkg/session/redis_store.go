package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "session:"

// RedisClient is the subset of go-redis used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	SetXX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps sessions as JSON values that Redis expires on its own.
// Concurrent writers to the same session follow last-writer-wins.
type RedisStore struct {
	client RedisClient
	prefix string
}

// NewRedisStore creates a store using keys "<prefix><token>".
func NewRedisStore(client RedisClient, prefix ...string) *RedisStore {
	if client == nil {
		panic("session: nil redis client")
	}
	p := DefaultRedisPrefix
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	return &RedisStore{client: client, prefix: p}
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	data, ttl, err := encode(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(session.Token), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if session.IsExpired() {
		_ = s.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}
	data, ttl, err := encode(session)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, s.key(session.Token), data, ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	session.LastActivityAt = lastActivity
	return s.Update(ctx, session)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (s *RedisStore) DeleteExpired(context.Context) error { return nil }

func (s *RedisStore) key(token string) string { return s.prefix + token }

func encode(session *Session) ([]byte, time.Duration, error) {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil, 0, ErrSessionExpired
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, 0, fmt.Errorf("encode session: %w", err)
	}
	return data, ttl, nil
}
