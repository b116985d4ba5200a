package redis

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// CreateSession связывает токен сессии с пользователем
func (c *Client) CreateSession(token, userID string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, sessionKey(token), userID, ttl).Err()
}

// ResolveSession возвращает пользователя сессии; пустая строка, если сессии нет
func (c *Client) ResolveSession(token string) (string, error) {
	ctx := context.Background()

	userID, err := c.rdb.Get(ctx, sessionKey(token)).Result()
	if err == redisv9.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}
