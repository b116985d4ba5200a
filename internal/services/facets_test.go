package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/fraud"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	redismocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis/mocks"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/underwriting"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func statement() []models.Transaction {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{ID: "t1", Date: date, Description: "Bet365 deposit", Amount: -500, Category: "Gambling"},
		{ID: "t2", Date: date, Description: "Salary March", Amount: 50000, Category: "Salary"},
	}
}

func TestFacetProvider_StoredScoresWin(t *testing.T) {
	store := new(redismocks.MockClientInterface)
	store.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{
		FraudScore:           float(10),
		BankingBehaviorScore: float(40),
		ObligationRatio:      float(25),
	}, nil)

	provider := NewFacetProvider(store, nil, nil, zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", statement())

	require.NoError(t, err)
	assert.Equal(t, 10.0, facets.FraudScore)
	assert.Equal(t, 40.0, facets.BankingBehaviorScore)
	assert.Equal(t, 25.0, facets.ObligationRatio)
	assert.Empty(t, facets.FraudFlags)
	store.AssertExpectations(t)
}

func TestFacetProvider_HeuristicFallback(t *testing.T) {
	store := new(redismocks.MockClientInterface)
	store.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{ObligationRatio: float(30)}, nil)

	provider := NewFacetProvider(store, nil, nil, zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", statement())

	require.NoError(t, err)
	assert.Equal(t, 30.0, facets.FraudScore)
	assert.Equal(t, []string{fraud.FlagGambling}, facets.FraudFlags)
	// Остаток -500, затем 49500: волатильность ограничена 100%
	assert.Equal(t, 30.0, facets.BankingBehaviorScore)
	assert.Equal(t, 30.0, facets.ObligationRatio)
}

func TestFacetProvider_DerivesBehaviorAndObligations(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{ID: "t1", Date: date, Description: "PAYROLL ACME CORP", Amount: 40000, Category: "Salary"},
		{ID: "t2", Date: date.AddDate(0, 0, 4), Description: "HDFC HOME LOAN EMI", Amount: -12000},
		{ID: "t3", Date: date.AddDate(0, 0, 9), Description: "CHQ RET insufficient funds", Amount: 0},
	}

	store := new(redismocks.MockClientInterface)
	store.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{}, nil)

	provider := NewFacetProvider(store, nil, nil, zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", transactions)

	require.NoError(t, err)
	assert.Equal(t, 30.0, facets.ObligationRatio)
	// Возврат чека 15 баллов и волатильность остатка 40000, 28000, 28000
	assert.InDelta(t, 20.3, facets.BankingBehaviorScore, 0.01)
	// Возврат чека и крупное списание
	assert.Equal(t, 25.0, facets.FraudScore)
}

func TestFacetProvider_StoredScoresOverrideDerived(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{ID: "t1", Date: date, Description: "PAYROLL ACME CORP", Amount: 40000},
		{ID: "t2", Date: date, Description: "CAR LOAN EMI", Amount: -20000},
	}

	store := new(redismocks.MockClientInterface)
	store.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{BankingBehaviorScore: float(5)}, nil)

	provider := NewFacetProvider(store, nil, underwriting.NewAnalyzer(nil), zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", transactions)

	require.NoError(t, err)
	assert.Equal(t, 5.0, facets.BankingBehaviorScore)
	assert.Equal(t, 50.0, facets.ObligationRatio)
}

func TestFacetProvider_StoreErrorFallsBack(t *testing.T) {
	store := new(redismocks.MockClientInterface)
	store.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{}, errors.New("connection refused"))

	provider := NewFacetProvider(store, nil, nil, zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", statement())

	require.NoError(t, err)
	assert.Equal(t, 30.0, facets.FraudScore)
	assert.Equal(t, 0.0, facets.ObligationRatio)
}

func TestFacetProvider_BlacklistErrorDegrades(t *testing.T) {
	blacklist := new(redismocks.MockClientInterface)
	blacklist.On("BlacklistedMerchants").Return(nil, errors.New("connection refused"))

	provider := NewFacetProvider(nil, fraud.NewHeuristicScorer(blacklist, 0), nil, zerolog.Nop())
	facets, err := provider.Facets(context.Background(), "J1", statement())

	require.NoError(t, err)
	assert.Equal(t, 30.0, facets.FraudScore)
	blacklist.AssertExpectations(t)
}

func TestFacetProvider_NoStore(t *testing.T) {
	provider := NewFacetProvider(nil, nil, nil, zerolog.Nop())

	facets, err := provider.Facets(context.Background(), "J1", nil)

	require.NoError(t, err)
	assert.Equal(t, models.FacetScores{FraudScore: 0, FraudFlags: []string{}}, facets)
}

func TestFacetProvider_CancelledContext(t *testing.T) {
	provider := NewFacetProvider(nil, nil, nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Facets(ctx, "J1", statement())

	assert.ErrorIs(t, err, context.Canceled)
}
