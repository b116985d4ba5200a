package riskstream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	redismocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis/mocks"
	servicemocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/services/mocks"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func analysisRequest(jobID string) *models.AnalysisRequestedEvent {
	return &models.AnalysisRequestedEvent{
		EventID:   "evt-1",
		EventType: models.EventTypeAnalysisRequested,
		Timestamp: time.Now(),
		Data:      models.AnalysisRequestData{JobID: jobID, Reason: "statement_uploaded"},
	}
}

func TestAnalysisHandler_Reanalyzes(t *testing.T) {
	service := new(servicemocks.MockRiskService)
	service.On("Reanalyze", mock.Anything, "J1").Return(&models.RiskSnapshot{JobID: "J1", RiskLevel: models.RiskLevelLow}, nil)

	err := analysisHandler(service, zerolog.Nop())(context.Background(), analysisRequest("J1"))

	require.NoError(t, err)
	service.AssertExpectations(t)
}

func TestAnalysisHandler_UnknownJobIsSkipped(t *testing.T) {
	service := new(servicemocks.MockRiskService)
	service.On("Reanalyze", mock.Anything, "J9").Return(nil, storage.ErrJobNotFound)

	err := analysisHandler(service, zerolog.Nop())(context.Background(), analysisRequest("J9"))

	assert.NoError(t, err)
}

func TestAnalysisHandler_PropagatesFailures(t *testing.T) {
	service := new(servicemocks.MockRiskService)
	service.On("Reanalyze", mock.Anything, "J1").Return(nil, errors.New("database is locked"))

	err := analysisHandler(service, zerolog.Nop())(context.Background(), analysisRequest("J1"))

	assert.EqualError(t, err, "database is locked")
}

func TestSeedDemoSession(t *testing.T) {
	sessions := new(redismocks.MockClientInterface)
	cfg := &config.Config{
		Redis: config.RedisConfig{SessionTTL: time.Hour},
		Demo:  config.DemoConfig{SessionToken: "local-token", UserID: "demo-user"},
	}
	sessions.On("CreateSession", "local-token", "demo-user", time.Hour).Return(nil)

	require.NoError(t, seedDemoSession(cfg, sessions, zerolog.Nop()))
	sessions.AssertExpectations(t)
}

func TestSeedDemoSession_Disabled(t *testing.T) {
	sessions := new(redismocks.MockClientInterface)

	require.NoError(t, seedDemoSession(&config.Config{}, sessions, zerolog.Nop()))
	sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}
