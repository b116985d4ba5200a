package redis

import (
	"context"
	"fmt"
	"strings"

	redisv9 "github.com/redis/go-redis/v9"
)

const riskStatsPrefix = "risk_stats:"

// IncrementRiskStats увеличивает счетчик снимков с данным уровнем риска
func (c *Client) IncrementRiskStats(riskLevel string) error {
	ctx := context.Background()
	key := fmt.Sprintf("%s%s", riskStatsPrefix, riskLevel)
	return c.rdb.Incr(ctx, key).Err()
}

// GetRiskStats возвращает счетчики снимков по уровням риска
func (c *Client) GetRiskStats() (map[string]int64, error) {
	ctx := context.Background()
	stats := make(map[string]int64)

	iter := c.rdb.Scan(ctx, 0, riskStatsPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		count, err := c.rdb.Get(ctx, key).Int64()
		if err == redisv9.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		stats[strings.TrimPrefix(key, riskStatsPrefix)] = count
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan risk stats: %w", err)
	}

	return stats, nil
}
