package mocks

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendSnapshotEvent мок для SendSnapshotEvent
func (m *MockProducer) SendSnapshotEvent(event *models.SnapshotEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
