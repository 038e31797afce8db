// README: History store backed by a Redis list per session, expiring with the session.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "taxifare:history:"

type RedisStore struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewRedisStore scopes a store to sessionID. The key TTL is refreshed on
// every append so it outlives the session by at most ttl.
func NewRedisStore(client *redis.Client, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, key: keyPrefix + sessionID, ttl: ttl}
}

func (s *RedisStore) Append(ctx context.Context, e Entry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, s.key, b)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *RedisStore) All(ctx context.Context) ([]Entry, error) {
	raw, err := s.redis.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := s.redis.LLen(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("history length: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.redis.Del(ctx, s.key).Err()
}
