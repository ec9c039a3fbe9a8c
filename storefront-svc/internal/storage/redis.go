package storage

import (
	"context"
	"encoding/json"
	"time"

	"brewpoint/storefront-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisCartStorage keeps one serialized cart per session under a well-known
// key. A missing or unreadable payload always loads as an empty cart.
type RedisCartStorage struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStorage(client *redis.Client, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{Client: client, TTL: ttl}
}

func (s *RedisCartStorage) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisCartStorage) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	payload, err := s.Client.Get(ctx, s.CartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		// Corrupt payload. Start over rather than wedge the session.
		return nil, nil
	}
	return lines, nil
}

func (s *RedisCartStorage) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.CartKey(sessionID), payload, s.TTL).Err()
}

func (s *RedisCartStorage) Clear(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.CartKey(sessionID)).Err()
}
