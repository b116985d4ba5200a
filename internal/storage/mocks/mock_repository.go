package mocks

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockJobRepository является моком для storage.JobRepository интерфейса
type MockJobRepository struct {
	mock.Mock
}

// CreateJob мок для CreateJob
func (m *MockJobRepository) CreateJob(job *models.AnalysisJob) error {
	args := m.Called(job)
	return args.Error(0)
}

// GetJob мок для GetJob
func (m *MockJobRepository) GetJob(jobID string) (*models.AnalysisJob, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisJob), args.Error(1)
}

// OwnerOf мок для OwnerOf
func (m *MockJobRepository) OwnerOf(jobID string) (string, error) {
	args := m.Called(jobID)
	return args.String(0), args.Error(1)
}

// UpdateJobStatus мок для UpdateJobStatus
func (m *MockJobRepository) UpdateJobStatus(jobID, status string) error {
	args := m.Called(jobID, status)
	return args.Error(0)
}

// SaveTransactions мок для SaveTransactions
func (m *MockJobRepository) SaveTransactions(jobID string, transactions []models.Transaction) error {
	args := m.Called(jobID, transactions)
	return args.Error(0)
}

// GetTransactions мок для GetTransactions
func (m *MockJobRepository) GetTransactions(jobID string) ([]models.Transaction, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

// UpdateTransactionCategory мок для UpdateTransactionCategory
func (m *MockJobRepository) UpdateTransactionCategory(jobID, transactionID, category string) error {
	args := m.Called(jobID, transactionID, category)
	return args.Error(0)
}

// NextSnapshotVersion мок для NextSnapshotVersion
func (m *MockJobRepository) NextSnapshotVersion(jobID string) (int64, error) {
	args := m.Called(jobID)
	if next, ok := args.Get(0).(func(string) int64); ok {
		return next(jobID), args.Error(1)
	}
	return args.Get(0).(int64), args.Error(1)
}

// SaveSnapshot мок для SaveSnapshot
func (m *MockJobRepository) SaveSnapshot(snapshot *models.RiskSnapshot) error {
	args := m.Called(snapshot)
	return args.Error(0)
}

// LatestSnapshot мок для LatestSnapshot
func (m *MockJobRepository) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskSnapshot), args.Error(1)
}

// ClearJob мок для ClearJob
func (m *MockJobRepository) ClearJob(jobID string) error {
	args := m.Called(jobID)
	return args.Error(0)
}
