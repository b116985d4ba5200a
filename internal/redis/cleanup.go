package redis

import (
	"context"
	"fmt"
)

// ClearJobData удаляет кэшированные данные задания (черные списки и сессии сохраняются)
func (c *Client) ClearJobData(jobID string) error {
	ctx := context.Background()

	if err := c.rdb.Del(ctx, snapshotKey(jobID), facetsKey(jobID)).Err(); err != nil {
		return fmt.Errorf("failed to clear job %s: %w", jobID, err)
	}

	return nil
}
