package models

import (
	"time"
)

// CategoryUncategorized присваивается операции, для которой не нашлось правила
const CategoryUncategorized = "Uncategorized"

// DateLayout формат даты операции в выписке
const DateLayout = "2006-01-02"

// Transaction представляет операцию из банковской выписки
type Transaction struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // отрицательная сумма - списание
	Category    string    `json:"category"`
}

// IsDebit сообщает, является ли операция списанием
func (t Transaction) IsDebit() bool {
	return t.Amount < 0
}

// IsCategorized сообщает, назначена ли операции категория
func (t Transaction) IsCategorized() bool {
	return t.Category != "" && t.Category != CategoryUncategorized
}

// AnalysisJob представляет задание на анализ выписок пользователя
type AnalysisJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
)

// CreateJobRequest представляет запрос на создание задания
type CreateJobRequest struct {
	Name string `json:"name" binding:"required"`
}

// TransactionInput представляет строку выписки во входящем запросе
type TransactionInput struct {
	ID          string  `json:"id"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// IngestRequest представляет пакет операций для задания
type IngestRequest struct {
	Transactions []TransactionInput `json:"transactions" binding:"required,dive"`
}

// CategoryCorrectionRequest представляет ручную правку категории
type CategoryCorrectionRequest struct {
	Category string `json:"category" binding:"required"`
}

// CategorizeResponse представляет ответ категоризатора
type CategorizeResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}
