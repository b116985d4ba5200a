package fraud

import (
	"errors"
	"testing"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statement(descriptions map[string]float64) []models.Transaction {
	var txs []models.Transaction
	i := 0
	for description, amount := range descriptions {
		i++
		txs = append(txs, models.Transaction{
			ID:          string(rune('a' + i)),
			Date:        time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC),
			Description: description,
			Amount:      amount,
		})
	}
	return txs
}

func TestNewHeuristicScorer(t *testing.T) {
	mockRedis := new(mocks.MockClientInterface)
	scorer := NewHeuristicScorer(mockRedis, 0)

	assert.NotNil(t, scorer)
	assert.Equal(t, mockRedis, scorer.blacklist)
	assert.Equal(t, DefaultLargeDebitThreshold, scorer.largeDebitThreshold)
}

func TestAssess_LowRisk(t *testing.T) {
	mockRedis := new(mocks.MockClientInterface)
	mockRedis.On("BlacklistedMerchants").Return([]string{"betway"}, nil)
	scorer := NewHeuristicScorer(mockRedis, 5000)

	assessment, err := scorer.Assess(statement(map[string]float64{
		"STARBUCKS #123":   -12.5,
		"PAYROLL ACME INC": 4200,
		"WHOLE FOODS":      -80,
	}))
	require.NoError(t, err)

	assert.Equal(t, 0.0, assessment.Score)
	assert.Equal(t, models.RiskLevelNone, assessment.Level)
	assert.Empty(t, assessment.Flags)

	mockRedis.AssertExpectations(t)
}

func TestAssess_Gambling(t *testing.T) {
	mockRedis := new(mocks.MockClientInterface)
	mockRedis.On("BlacklistedMerchants").Return([]string{}, nil)
	scorer := NewHeuristicScorer(mockRedis, 5000)

	txs := statement(map[string]float64{"GRAND CASINO LAS VEGAS": -200})
	txs = append(txs, models.Transaction{ID: "z", Description: "STATE LOTTO", Amount: -5, Category: "Gambling"})

	assessment, err := scorer.Assess(txs)
	require.NoError(t, err)

	assert.Equal(t, 30.0, assessment.Score)
	assert.Equal(t, models.RiskLevelLow, assessment.Level)
	assert.Equal(t, []string{FlagGambling}, assessment.Flags)
}

func TestAssess_ChequeReturnsAreCapped(t *testing.T) {
	scorer := NewHeuristicScorer(nil, 5000)

	assessment, err := scorer.Assess(statement(map[string]float64{
		"CHQ RET 000123":                -500,
		"CHEQUE RETURN CHARGES":         -10,
		"BOUNCED CHEQUE 88":             -500,
		"INSUFFICIENT FUNDS FEE":        -25,
		"OUTWARD CHQ BOUNCE":            -300,
		"REFER TO DRAWER 1002":          -100,
		"PAYMENT STOPPED BY DRAWER 771": -10,
	}))
	require.NoError(t, err)

	assert.Equal(t, 60.0, assessment.Score)
	assert.Equal(t, models.RiskLevelHigh, assessment.Level)
	assert.Contains(t, assessment.Flags, FlagChequeReturns)
}

func TestAssess_BlacklistedMerchant(t *testing.T) {
	mockRedis := new(mocks.MockClientInterface)
	mockRedis.On("BlacklistedMerchants").Return([]string{" ShadyPay "}, nil)
	scorer := NewHeuristicScorer(mockRedis, 5000)

	assessment, err := scorer.Assess(statement(map[string]float64{
		"SHADYPAY TRANSFER": -50,
		"CASINO ROYALE":     -20,
	}))
	require.NoError(t, err)

	// Сумма ограничена 100
	assert.Equal(t, 100.0, assessment.Score)
	assert.Equal(t, models.RiskLevelCritical, assessment.Level)
	assert.Contains(t, assessment.Flags, FlagBlacklistedMerchant)
	assert.Contains(t, assessment.Flags, FlagGambling)
}

func TestAssess_LargeDebits(t *testing.T) {
	scorer := NewHeuristicScorer(nil, 1000)

	assessment, err := scorer.Assess(statement(map[string]float64{
		"WIRE OUT 1": -1500,
		"WIRE OUT 2": -2500,
		"WIRE OUT 3": -3500,
		"WIRE OUT 4": -4500,
		"BONUS":      99999,
	}))
	require.NoError(t, err)

	assert.Equal(t, 30.0, assessment.Score)
	assert.Equal(t, []string{FlagLargeDebits}, assessment.Flags)
}

func TestAssess_BlacklistError(t *testing.T) {
	mockRedis := new(mocks.MockClientInterface)
	mockRedis.On("BlacklistedMerchants").Return(nil, errors.New("redis down"))
	scorer := NewHeuristicScorer(mockRedis, 5000)

	assessment, err := scorer.Assess(statement(map[string]float64{"ANY": -1}))
	require.Error(t, err)
	assert.Nil(t, assessment)
	assert.Contains(t, err.Error(), "redis down")
}
