package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenGuard marks password-reset tokens as consumed so a token
// cannot be replayed within its validity window.
type ResetTokenGuard interface {
	// Consume records the token as used. It returns false if the token
	// was already consumed.
	Consume(ctx context.Context, token string, ttl time.Duration) (bool, error)
}

// RedisResetGuard is the Redis-backed ResetTokenGuard. Keys expire with
// the token, so no cleanup pass is needed.
type RedisResetGuard struct {
	Client *redis.Client
}

func NewRedisResetGuard(redisURL string) (*RedisResetGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisResetGuard{Client: client}, nil
}

func (g *RedisResetGuard) Consume(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	// Store a digest, not the signed token itself.
	sum := sha256.Sum256([]byte(token))
	key := "reset:consumed:" + hex.EncodeToString(sum[:])

	ok, err := g.Client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record reset token: %w", err)
	}
	return ok, nil
}

func (g *RedisResetGuard) Close() error {
	return g.Client.Close()
}
