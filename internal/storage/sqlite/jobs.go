package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
)

// CreateJob создает задание на анализ
func (s *SQLiteStorage) CreateJob(job *models.AnalysisJob) error {
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = job.CreatedAt
	}
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}

	query := `
		INSERT INTO analysis_jobs (id, user_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	return retryOperation(func() error {
		_, err := s.DB.Exec(query, job.ID, job.UserID, job.Name, job.Status, job.CreatedAt, job.UpdatedAt)
		return err
	})
}

// GetJob получает задание по идентификатору
func (s *SQLiteStorage) GetJob(jobID string) (*models.AnalysisJob, error) {
	query := `
		SELECT id, user_id, name, status, created_at, updated_at
		FROM analysis_jobs
		WHERE id = ?
	`

	var job models.AnalysisJob
	err := s.DB.QueryRow(query, jobID).Scan(
		&job.ID, &job.UserID, &job.Name, &job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", jobID, err)
	}

	return &job, nil
}

// OwnerOf возвращает владельца задания
func (s *SQLiteStorage) OwnerOf(jobID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(`SELECT user_id FROM analysis_jobs WHERE id = ?`, jobID).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrJobNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up owner of %s: %w", jobID, err)
	}
	return userID, nil
}

// UpdateJobStatus обновляет статус задания
func (s *SQLiteStorage) UpdateJobStatus(jobID, status string) error {
	query := `
		UPDATE analysis_jobs
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	var affected int64
	err := retryOperation(func() error {
		result, err := s.DB.Exec(query, status, time.Now().UTC(), jobID)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrJobNotFound
	}
	return nil
}

// NextSnapshotVersion выдает следующий номер снимка задания.
// Счетчик хранится в analysis_jobs и не сбрасывается при очистке операций.
func (s *SQLiteStorage) NextSnapshotVersion(jobID string) (int64, error) {
	query := `
		UPDATE analysis_jobs
		SET snapshot_version = snapshot_version + 1
		WHERE id = ?
		RETURNING snapshot_version
	`

	var version int64
	err := retryOperation(func() error {
		return s.DB.QueryRow(query, jobID).Scan(&version)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, storage.ErrJobNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to allocate snapshot version for %s: %w", jobID, err)
	}
	return version, nil
}
