package sqlite

// ClearJob удаляет операции и снимки задания
func (s *SQLiteStorage) ClearJob(jobID string) error {
	return retryOperation(func() error {
		if _, err := s.DB.Exec(`DELETE FROM transactions WHERE job_id = ?`, jobID); err != nil {
			return err
		}
		_, err := s.DB.Exec(`DELETE FROM risk_snapshots WHERE job_id = ?`, jobID)
		return err
	})
}
