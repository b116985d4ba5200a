package mocks

import (
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// CacheSnapshot мок для CacheSnapshot
func (m *MockClientInterface) CacheSnapshot(snapshot *models.RiskSnapshot) error {
	args := m.Called(snapshot)
	return args.Error(0)
}

// GetCachedSnapshot мок для GetCachedSnapshot
func (m *MockClientInterface) GetCachedSnapshot(jobID string) (*models.RiskSnapshot, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiskSnapshot), args.Error(1)
}

// SaveFacetScores мок для SaveFacetScores
func (m *MockClientInterface) SaveFacetScores(jobID string, update models.FacetScoresUpdate) error {
	args := m.Called(jobID, update)
	return args.Error(0)
}

// GetFacetScores мок для GetFacetScores
func (m *MockClientInterface) GetFacetScores(jobID string) (models.FacetScoresUpdate, error) {
	args := m.Called(jobID)
	return args.Get(0).(models.FacetScoresUpdate), args.Error(1)
}

// CreateSession мок для CreateSession
func (m *MockClientInterface) CreateSession(token, userID string, ttl time.Duration) error {
	args := m.Called(token, userID, ttl)
	return args.Error(0)
}

// ResolveSession мок для ResolveSession
func (m *MockClientInterface) ResolveSession(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// BlacklistedMerchants мок для BlacklistedMerchants
func (m *MockClientInterface) BlacklistedMerchants() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// AddMerchantToBlacklist мок для AddMerchantToBlacklist
func (m *MockClientInterface) AddMerchantToBlacklist(merchant string) error {
	args := m.Called(merchant)
	return args.Error(0)
}

// InitializeBlacklists мок для InitializeBlacklists
func (m *MockClientInterface) InitializeBlacklists() error {
	args := m.Called()
	return args.Error(0)
}

// IncrementRiskStats мок для IncrementRiskStats
func (m *MockClientInterface) IncrementRiskStats(riskLevel string) error {
	args := m.Called(riskLevel)
	return args.Error(0)
}

// GetRiskStats мок для GetRiskStats
func (m *MockClientInterface) GetRiskStats() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// ClearJobData мок для ClearJobData
func (m *MockClientInterface) ClearJobData(jobID string) error {
	args := m.Called(jobID)
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
