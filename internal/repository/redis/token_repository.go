package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// StoreToken keeps a token -> user_id lookup for the token's lifetime so the
// auth middleware can reject tokens revoked before expiry.
func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	if err := r.client.Set(ctx, tokenKey, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in redis: %w", err)
	}

	return nil
}

// ValidateToken checks if a token exists and returns its user id.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	userID, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

// RevokeToken removes a token lookup, invalidating it immediately.
func (r *TokenRepository) RevokeToken(ctx context.Context, userID, token string) error {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	if err := r.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
