package services

import (
	"context"
	"errors"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrFacetStoreRequired = errors.New("facet store is not configured")
)

// RiskService определяет интерфейс анализа заданий
type RiskService interface {
	// CreateJob создает задание пользователя
	CreateJob(userID string, req *models.CreateJobRequest) (*models.AnalysisJob, error)

	// OwnerOf возвращает владельца задания
	OwnerOf(jobID string) (string, error)

	// IngestTransactions сохраняет строки выписки и пересчитывает риск задания
	IngestTransactions(ctx context.Context, jobID string, inputs []models.TransactionInput) (*models.RiskSnapshot, error)

	// CorrectCategory сохраняет ручную правку категории и пересчитывает риск
	CorrectCategory(ctx context.Context, jobID, transactionID, category string) (*models.RiskSnapshot, error)

	// SaveFacetScores сохраняет внешние показатели и пересчитывает риск
	SaveFacetScores(ctx context.Context, jobID string, update models.FacetScoresUpdate) (*models.RiskSnapshot, error)

	// ClearTransactions удаляет операции задания вместе с кэшем и публикует пустой снимок
	ClearTransactions(ctx context.Context, jobID string) (*models.RiskSnapshot, error)

	// Reanalyze пересчитывает риск задания по сохраненным операциям
	Reanalyze(ctx context.Context, jobID string) (*models.RiskSnapshot, error)

	// Analyze рассчитывает снимок по переданным операциям без сохранения
	Analyze(ctx context.Context, jobID string, transactions []models.Transaction) (*models.RiskSnapshot, error)

	// LatestSnapshot возвращает последний снимок задания; nil если его нет
	LatestSnapshot(jobID string) (*models.RiskSnapshot, error)

	// Categorize определяет категорию по описанию операции
	Categorize(description string) string

	// RiskStats возвращает число снимков по уровням риска
	RiskStats() (map[string]int64, error)
}

// FacetSource источник показателей риска задания
type FacetSource interface {
	Facets(ctx context.Context, jobID string, transactions []models.Transaction) (models.FacetScores, error)
}

// SnapshotPublisher рассылает снимок подписчикам задания
type SnapshotPublisher interface {
	Publish(snapshot *models.RiskSnapshot) int
}
