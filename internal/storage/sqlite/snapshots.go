package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

const generatedLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveSnapshot сохраняет снимок риска; снимок с меньшим номером не заменяет более новый
func (s *SQLiteStorage) SaveSnapshot(snapshot *models.RiskSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO risk_snapshots (job_id, overall_risk_score, risk_level, version, payload, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET
			overall_risk_score = excluded.overall_risk_score,
			risk_level = excluded.risk_level,
			version = excluded.version,
			payload = excluded.payload,
			generated_at = excluded.generated_at
		WHERE excluded.version >= risk_snapshots.version
	`

	generatedAt := snapshot.GeneratedAt.UTC().Format(generatedLayout)
	return retryOperation(func() error {
		_, err := s.DB.Exec(query, snapshot.JobID, snapshot.OverallRiskScore, snapshot.RiskLevel, snapshot.Version, string(payload), generatedAt)
		return err
	})
}

// LatestSnapshot получает последний снимок риска задания
func (s *SQLiteStorage) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	var payload string
	err := s.DB.QueryRow(`SELECT payload FROM risk_snapshots WHERE job_id = ?`, jobID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot models.RiskSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
