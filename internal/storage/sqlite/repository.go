package sqlite

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
)

// Repository реализует интерфейс JobRepository для SQLite
type Repository struct {
	storage *SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) storage.JobRepository {
	return &Repository{storage: storage}
}

func (r *Repository) CreateJob(job *models.AnalysisJob) error {
	return r.storage.CreateJob(job)
}

func (r *Repository) GetJob(jobID string) (*models.AnalysisJob, error) {
	return r.storage.GetJob(jobID)
}

func (r *Repository) OwnerOf(jobID string) (string, error) {
	return r.storage.OwnerOf(jobID)
}

func (r *Repository) UpdateJobStatus(jobID, status string) error {
	return r.storage.UpdateJobStatus(jobID, status)
}

func (r *Repository) SaveTransactions(jobID string, transactions []models.Transaction) error {
	return r.storage.SaveTransactions(jobID, transactions)
}

func (r *Repository) GetTransactions(jobID string) ([]models.Transaction, error) {
	return r.storage.GetTransactions(jobID)
}

func (r *Repository) UpdateTransactionCategory(jobID, transactionID, category string) error {
	return r.storage.UpdateTransactionCategory(jobID, transactionID, category)
}

func (r *Repository) NextSnapshotVersion(jobID string) (int64, error) {
	return r.storage.NextSnapshotVersion(jobID)
}

func (r *Repository) SaveSnapshot(snapshot *models.RiskSnapshot) error {
	return r.storage.SaveSnapshot(snapshot)
}

func (r *Repository) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	return r.storage.LatestSnapshot(jobID)
}

func (r *Repository) ClearJob(jobID string) error {
	return r.storage.ClearJob(jobID)
}
