package kafka

import (
	"context"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// Producer определяет интерфейс для отправки снимков риска в Kafka
type Producer interface {
	SendSnapshotEvent(event *models.SnapshotEvent) error

	Close() error
}

// Consumer определяет интерфейс для чтения запросов на пересчет
type Consumer interface {
	// Start читает сообщения до отмены контекста
	Start(ctx context.Context) error

	Close() error
}

// AnalysisHandler обрабатывает запрос на пересчет задания
type AnalysisHandler func(ctx context.Context, event *models.AnalysisRequestedEvent) error
