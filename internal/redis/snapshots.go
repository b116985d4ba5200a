package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func snapshotKey(jobID string) string {
	return fmt.Sprintf("job:%s:snapshot", jobID)
}

// CacheSnapshot сохраняет последний снимок задания с TTL.
// Снимок с меньшим номером не перезаписывает сохраненный.
func (c *Client) CacheSnapshot(snapshot *models.RiskSnapshot) error {
	ctx := context.Background()

	current, err := c.GetCachedSnapshot(snapshot.JobID)
	if err != nil {
		return err
	}
	if current != nil && current.Version > snapshot.Version {
		return nil
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return c.rdb.Set(ctx, snapshotKey(snapshot.JobID), data, c.snapshotTTL).Err()
}

// GetCachedSnapshot получает последний снимок задания; nil если его нет
func (c *Client) GetCachedSnapshot(jobID string) (*models.RiskSnapshot, error) {
	ctx := context.Background()

	data, err := c.rdb.Get(ctx, snapshotKey(jobID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot models.RiskSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
