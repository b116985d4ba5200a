package storage

import (
	"errors"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// JobRepository определяет интерфейс для работы с заданиями, операциями и снимками риска
type JobRepository interface {
	// CreateJob создает задание на анализ
	CreateJob(job *models.AnalysisJob) error

	// GetJob получает задание по идентификатору
	GetJob(jobID string) (*models.AnalysisJob, error)

	// OwnerOf возвращает владельца задания или ErrJobNotFound
	OwnerOf(jobID string) (string, error)

	// UpdateJobStatus обновляет статус задания
	UpdateJobStatus(jobID, status string) error

	// SaveTransactions сохраняет операции задания (повторная запись операции обновляет ее)
	SaveTransactions(jobID string, transactions []models.Transaction) error

	// GetTransactions получает операции задания в порядке даты и идентификатора
	GetTransactions(jobID string) ([]models.Transaction, error)

	// UpdateTransactionCategory сохраняет ручную правку категории
	UpdateTransactionCategory(jobID, transactionID, category string) error

	// NextSnapshotVersion выдает следующий номер снимка задания
	NextSnapshotVersion(jobID string) (int64, error)

	// SaveSnapshot сохраняет последний снимок риска задания
	SaveSnapshot(snapshot *models.RiskSnapshot) error

	// LatestSnapshot получает последний снимок риска; nil если его нет
	LatestSnapshot(jobID string) (*models.RiskSnapshot, error)

	// ClearJob удаляет операции и снимки задания
	ClearJob(jobID string) error
}
