package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS analysis_jobs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		snapshot_version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		job_id TEXT NOT NULL REFERENCES analysis_jobs(id) ON DELETE CASCADE,
		transaction_id TEXT NOT NULL,
		tx_date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL DEFAULT 'Uncategorized',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (job_id, transaction_id)
	);

	CREATE TABLE IF NOT EXISTS risk_snapshots (
		job_id TEXT PRIMARY KEY REFERENCES analysis_jobs(id) ON DELETE CASCADE,
		overall_risk_score REAL NOT NULL,
		risk_level TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		payload TEXT NOT NULL,
		generated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_user_id ON analysis_jobs(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_job_date ON transactions(job_id, tx_date);
	`

	_, err := s.DB.Exec(query)
	return err
}
