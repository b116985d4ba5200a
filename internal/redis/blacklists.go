package redis

import (
	"context"
	"strings"
)

const merchantBlacklistKey = "blacklist:merchants"

// BlacklistedMerchants возвращает ключевые слова мерчантов из черного списка
func (c *Client) BlacklistedMerchants() ([]string, error) {
	ctx := context.Background()
	return c.rdb.SMembers(ctx, merchantBlacklistKey).Result()
}

// InitializeBlacklists заполняет черный список мерчантов начальными значениями
func (c *Client) InitializeBlacklists() error {
	ctx := context.Background()

	merchants := []string{"betway", "pokerstars", "1xbet", "binomo", "olymptrade"}
	members := make([]interface{}, 0, len(merchants))
	for _, merchant := range merchants {
		members = append(members, merchant)
	}

	return c.rdb.SAdd(ctx, merchantBlacklistKey, members...).Err()
}

// AddMerchantToBlacklist добавляет мерчанта в черный список (используется для тестирования и администрирования)
func (c *Client) AddMerchantToBlacklist(merchant string) error {
	ctx := context.Background()
	return c.rdb.SAdd(ctx, merchantBlacklistKey, strings.ToLower(strings.TrimSpace(merchant))).Err()
}
