package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

const (
	fieldFraudScore      = "fraud_score"
	fieldBehaviorScore   = "banking_behavior_score"
	fieldObligationRatio = "obligation_ratio"
)

func facetsKey(jobID string) string {
	return fmt.Sprintf("job:%s:facets", jobID)
}

// SaveFacetScores записывает переданные показатели задания, остальные не трогает
func (c *Client) SaveFacetScores(jobID string, update models.FacetScoresUpdate) error {
	ctx := context.Background()

	values := make(map[string]interface{})
	if update.FraudScore != nil {
		values[fieldFraudScore] = *update.FraudScore
	}
	if update.BankingBehaviorScore != nil {
		values[fieldBehaviorScore] = *update.BankingBehaviorScore
	}
	if update.ObligationRatio != nil {
		values[fieldObligationRatio] = *update.ObligationRatio
	}
	if len(values) == 0 {
		return nil
	}

	return c.rdb.HSet(ctx, facetsKey(jobID), values).Err()
}

// GetFacetScores возвращает сохраненные показатели; отсутствующие поля равны nil
func (c *Client) GetFacetScores(jobID string) (models.FacetScoresUpdate, error) {
	ctx := context.Background()

	var result models.FacetScoresUpdate
	values, err := c.rdb.HGetAll(ctx, facetsKey(jobID)).Result()
	if err != nil {
		return result, fmt.Errorf("failed to get facet scores: %w", err)
	}

	parse := func(field string) (*float64, error) {
		raw, ok := values[field]
		if !ok {
			return nil, nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", field, raw, err)
		}
		return &value, nil
	}

	if result.FraudScore, err = parse(fieldFraudScore); err != nil {
		return result, err
	}
	if result.BankingBehaviorScore, err = parse(fieldBehaviorScore); err != nil {
		return result, err
	}
	if result.ObligationRatio, err = parse(fieldObligationRatio); err != nil {
		return result, err
	}

	return result, nil
}
