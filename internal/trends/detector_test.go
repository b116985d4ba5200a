package trends

import (
	"math"
	"testing"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func tx(id string, date time.Time, category string, amount float64) models.Transaction {
	return models.Transaction{ID: id, Date: date, Description: category + " purchase", Amount: amount, Category: category}
}

func TestDetect_EmptyInput(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect(nil)

	assert.NotNil(t, result.Trends)
	assert.NotNil(t, result.Anomalies)
	assert.NotNil(t, result.Aggregates)
	assert.Empty(t, result.Trends)
	assert.Empty(t, result.Anomalies)
}

func TestDetect_SkipsNonFiniteAmounts(t *testing.T) {
	detector := NewDetector(DefaultConfig())

	var result models.DetectionResult
	assert.NotPanics(t, func() {
		result = detector.Detect([]models.Transaction{
			tx("nan", day(2024, 1, 5), "Travel", math.NaN()),
			tx("inf", day(2024, 1, 6), "Travel", math.Inf(-1)),
		})
	})
	assert.Empty(t, result.Aggregates)
	assert.Empty(t, result.Trends)
	assert.Empty(t, result.Anomalies)

	result = detector.Detect([]models.Transaction{
		tx("ok", day(2024, 1, 5), "Travel", -120),
		tx("bad", day(2024, 1, 6), "Travel", math.Inf(1)),
	})
	require.Len(t, result.Aggregates, 1)
	assert.Equal(t, 120.0, result.Aggregates[0].Expenses)
	assert.Equal(t, 1, result.Aggregates[0].Count)
}

func TestDetect_SingleMonthHasZeroChange(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect([]models.Transaction{
		{ID: "t1", Date: day(2024, 1, 5), Description: "STARBUCKS #123", Amount: -12.50, Category: "Coffee Shops"},
	})

	require.Len(t, result.Trends, 1)
	trend := result.Trends[0]
	assert.Equal(t, "Coffee Shops", trend.Category)
	assert.Equal(t, 12.5, trend.CurrentMonthSpending)
	assert.Equal(t, 0.0, trend.AverageSpending)
	assert.Equal(t, 0.0, trend.ChangePercentage)
	assert.Equal(t, models.TrendStable, trend.Direction)
}

func TestDetect_TrendAgainstPreviousMonths(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect([]models.Transaction{
		tx("g1", day(2024, 1, 3), "Groceries", -60),
		tx("g2", day(2024, 1, 20), "Groceries", -40),
		tx("g3", day(2024, 2, 11), "Groceries", -150),
		tx("s1", day(2024, 2, 1), "Salary", 3000),
	})

	require.Len(t, result.Trends, 1)
	trend := result.Trends[0]
	assert.Equal(t, "Groceries", trend.Category)
	assert.Equal(t, 150.0, trend.CurrentMonthSpending)
	assert.Equal(t, 100.0, trend.AverageSpending)
	assert.Equal(t, 50.0, trend.ChangePercentage)
	assert.Equal(t, models.TrendIncrease, trend.Direction)
}

func TestDetect_BaselineCountsMonthsWithoutSpending(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect([]models.Transaction{
		tx("a", day(2024, 1, 10), "Travel", -100),
		tx("b", day(2024, 2, 10), "Groceries", -20),
		tx("c", day(2024, 3, 10), "Travel", -25),
	})

	var travel *models.Trend
	for i := range result.Trends {
		if result.Trends[i].Category == "Travel" {
			travel = &result.Trends[i]
		}
	}
	require.NotNil(t, travel)
	assert.Equal(t, 50.0, travel.AverageSpending)
	assert.Equal(t, -50.0, travel.ChangePercentage)
	assert.Equal(t, models.TrendDecrease, travel.Direction)
}

func TestDetect_TrendThresholdFiltersSmallChanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrendThreshold = 20

	result := NewDetector(cfg).Detect([]models.Transaction{
		tx("a", day(2024, 1, 10), "Groceries", -100),
		tx("b", day(2024, 2, 10), "Groceries", -110),
		tx("c", day(2024, 1, 10), "Travel", -100),
		tx("d", day(2024, 2, 10), "Travel", -300),
	})

	require.Len(t, result.Trends, 1)
	assert.Equal(t, "Travel", result.Trends[0].Category)
	assert.Equal(t, 200.0, result.Trends[0].ChangePercentage)
}

func TestDetect_Aggregates(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect([]models.Transaction{
		tx("a", day(2024, 1, 10), "Shopping", -30.10),
		tx("b", day(2024, 1, 12), "Shopping", -19.90),
		tx("c", day(2024, 1, 15), "Shopping", 5),
		tx("d", day(2024, 2, 1), "Shopping", -10),
	})

	require.Len(t, result.Aggregates, 2)
	assert.Equal(t, models.MonthlyAggregate{Category: "Shopping", Month: "2024-01", Expenses: 50, Income: 5, Count: 3}, result.Aggregates[0])
	assert.Equal(t, models.MonthlyAggregate{Category: "Shopping", Month: "2024-02", Expenses: 10, Income: 0, Count: 1}, result.Aggregates[1])
}

func TestDetect_StatisticalAnomaly(t *testing.T) {
	result := NewDetector(DefaultConfig()).Detect([]models.Transaction{
		tx("a", day(2024, 1, 1), "Groceries", -10),
		tx("b", day(2024, 1, 2), "Groceries", -10),
		tx("c", day(2024, 1, 3), "Groceries", -10),
		tx("d", day(2024, 1, 4), "Groceries", -10),
		tx("e", day(2024, 1, 5), "Groceries", -200),
		tx("f", day(2024, 1, 6), "Groceries", 500),
	})

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "e", result.Anomalies[0].Transaction.ID)
	assert.Equal(t, "unusually large debit of 200.00 for category Groceries (threshold 144.00)", result.Anomalies[0].Message)
}

func TestDetect_FloorWhenHistoryIsShort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnomalyFloor = 1000

	result := NewDetector(cfg).Detect([]models.Transaction{
		tx("a", day(2024, 1, 1), "Electronics", -999),
		tx("b", day(2024, 1, 2), "Electronics", -1500),
		tx("c", day(2024, 1, 3), "Electronics", 2500),
	})

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, "b", result.Anomalies[0].Transaction.ID)
	assert.Contains(t, result.Anomalies[0].Message, "threshold 1000.00")
}

func TestDetect_IsIdempotentAndOrderIndependent(t *testing.T) {
	input := []models.Transaction{
		tx("a", day(2024, 1, 1), "Groceries", -10.33),
		tx("b", day(2024, 2, 2), "Groceries", -17.10),
		tx("c", day(2024, 3, 3), "Travel", -1200),
		tx("d", day(2024, 3, 3), "Groceries", -40.01),
		tx("e", day(2024, 1, 3), "Travel", -99.99),
	}
	reversed := make([]models.Transaction, len(input))
	for i := range input {
		reversed[len(input)-1-i] = input[i]
	}

	detector := NewDetector(DefaultConfig())
	first := detector.Detect(input)
	second := detector.Detect(input)
	third := detector.Detect(reversed)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestNewDetector_NormalizesConfig(t *testing.T) {
	detector := NewDetector(Config{AnomalyMultiplier: -1, AnomalyFloor: -5, MinHistory: 0, TrendThreshold: -3})

	cfg := detector.Config()
	assert.Equal(t, 3.0, cfg.AnomalyMultiplier)
	assert.Equal(t, 1000.0, cfg.AnomalyFloor)
	assert.Equal(t, 5, cfg.MinHistory)
	assert.Equal(t, 0.0, cfg.TrendThreshold)

	cfg = NewDetector(Config{AnomalyMultiplier: math.Inf(1), AnomalyFloor: math.NaN(), MinHistory: 2}).Config()
	assert.Equal(t, 3.0, cfg.AnomalyMultiplier)
	assert.Equal(t, 1000.0, cfg.AnomalyFloor)
}
