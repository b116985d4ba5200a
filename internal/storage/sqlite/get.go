package sqlite

import (
	"fmt"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// GetTransactions получает операции задания в порядке даты и идентификатора
func (s *SQLiteStorage) GetTransactions(jobID string) ([]models.Transaction, error) {
	query := `
		SELECT transaction_id, tx_date, description, amount, category
		FROM transactions
		WHERE job_id = ?
		ORDER BY tx_date, transaction_id
	`

	rows, err := s.DB.Query(query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var (
			tx   models.Transaction
			date string
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &tx.Amount, &tx.Category); err != nil {
			return nil, err
		}
		tx.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for transaction %s: %w", date, tx.ID, err)
		}
		tx.JobID = jobID
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
