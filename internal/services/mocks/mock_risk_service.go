package mocks

import (
	"context"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockRiskService является моком для services.RiskService интерфейса
type MockRiskService struct {
	mock.Mock
}

// CreateJob мок для CreateJob
func (m *MockRiskService) CreateJob(userID string, req *models.CreateJobRequest) (*models.AnalysisJob, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisJob), args.Error(1)
}

// OwnerOf мок для OwnerOf
func (m *MockRiskService) OwnerOf(jobID string) (string, error) {
	args := m.Called(jobID)
	return args.String(0), args.Error(1)
}

// IngestTransactions мок для IngestTransactions
func (m *MockRiskService) IngestTransactions(ctx context.Context, jobID string, inputs []models.TransactionInput) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID, inputs)
	return snapshotResult(args)
}

// CorrectCategory мок для CorrectCategory
func (m *MockRiskService) CorrectCategory(ctx context.Context, jobID, transactionID, category string) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID, transactionID, category)
	return snapshotResult(args)
}

// SaveFacetScores мок для SaveFacetScores
func (m *MockRiskService) SaveFacetScores(ctx context.Context, jobID string, update models.FacetScoresUpdate) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID, update)
	return snapshotResult(args)
}

// ClearTransactions мок для ClearTransactions
func (m *MockRiskService) ClearTransactions(ctx context.Context, jobID string) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID)
	return snapshotResult(args)
}

// Reanalyze мок для Reanalyze
func (m *MockRiskService) Reanalyze(ctx context.Context, jobID string) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID)
	return snapshotResult(args)
}

// Analyze мок для Analyze
func (m *MockRiskService) Analyze(ctx context.Context, jobID string, transactions []models.Transaction) (*models.RiskSnapshot, error) {
	args := m.Called(ctx, jobID, transactions)
	return snapshotResult(args)
}

// LatestSnapshot мок для LatestSnapshot
func (m *MockRiskService) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	args := m.Called(jobID)
	return snapshotResult(args)
}

// Categorize мок для Categorize
func (m *MockRiskService) Categorize(description string) string {
	args := m.Called(description)
	return args.String(0)
}

// RiskStats мок для RiskStats
func (m *MockRiskService) RiskStats() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func snapshotResult(args mock.Arguments) (*models.RiskSnapshot, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskSnapshot), args.Error(1)
}
