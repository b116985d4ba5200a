package sqlite

import (
	"fmt"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// dateLayout хранит дату в виде, сортируемом как строка
const dateLayout = "2006-01-02 15:04:05"

// SaveTransactions сохраняет пакет операций задания в одной транзакции БД
func (s *SQLiteStorage) SaveTransactions(jobID string, transactions []models.Transaction) error {
	if _, err := s.OwnerOf(jobID); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (job_id, transaction_id, tx_date, description, amount, category)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id, transaction_id) DO UPDATE SET
			tx_date = excluded.tx_date,
			description = excluded.description,
			amount = excluded.amount,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
	`

	return retryOperation(func() error {
		dbTx, err := s.DB.Begin()
		if err != nil {
			return err
		}
		defer dbTx.Rollback()

		stmt, err := dbTx.Prepare(query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, tx := range transactions {
			category := tx.Category
			if category == "" {
				category = models.CategoryUncategorized
			}
			if _, err := stmt.Exec(jobID, tx.ID, tx.Date.UTC().Format(dateLayout), tx.Description, tx.Amount, category); err != nil {
				return fmt.Errorf("failed to save transaction %s: %w", tx.ID, err)
			}
		}

		return dbTx.Commit()
	})
}
