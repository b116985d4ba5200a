package sqlite

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
)

// UpdateTransactionCategory сохраняет ручную правку категории операции
func (s *SQLiteStorage) UpdateTransactionCategory(jobID, transactionID, category string) error {
	query := `
		UPDATE transactions
		SET category = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE job_id = ? AND transaction_id = ?
	`

	var affected int64
	err := retryOperation(func() error {
		result, err := s.DB.Exec(query, category, jobID, transactionID)
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
		return storage.ErrTransactionNotFound
	}
	return nil
}
