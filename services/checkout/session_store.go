package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"deskhive/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore caches checkout sessions between order creation and payment
// verification, keyed by provider order ID (the one identifier present on
// both the session and the proof). Sessions expire on their own; a vanished
// session simply forces a fresh checkout attempt.
type SessionStore interface {
	Save(ctx context.Context, session models.CheckoutSession, ttl time.Duration) error
	Get(ctx context.Context, providerOrderID string) (*models.CheckoutSession, error)
	Delete(ctx context.Context, providerOrderID string) error
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore returns a SessionStore backed by the given Redis
// client.
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionCacheKey(providerOrderID string) string {
	return "checkout:session:" + providerOrderID
}

func (s *redisSessionStore) Save(ctx context.Context, session models.CheckoutSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.client.Set(ctx, sessionCacheKey(session.ProviderOrderID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, providerOrderID string) (*models.CheckoutSession, error) {
	data, err := s.client.Get(ctx, sessionCacheKey(providerOrderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("checkout session not found or expired: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, providerOrderID string) error {
	return s.client.Del(ctx, sessionCacheKey(providerOrderID)).Err()
}
