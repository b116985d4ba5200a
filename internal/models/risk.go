package models

import (
	"time"
)

// MonthlyAggregate сумма операций категории за календарный месяц
type MonthlyAggregate struct {
	Category string  `json:"category"`
	Month    string  `json:"month"` // YYYY-MM
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Count    int     `json:"count"`
}

const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
	TrendStable   = "stable"
)

// Trend отклонение расходов текущего месяца от среднего по прошлым месяцам
type Trend struct {
	Category             string  `json:"category"`
	CurrentMonthSpending float64 `json:"currentMonthSpending"`
	AverageSpending      float64 `json:"averageSpending"`
	ChangePercentage     float64 `json:"changePercentage"`
	Direction            string  `json:"direction"`
}

// Anomaly подозрительная операция с пояснением
type Anomaly struct {
	Transaction Transaction `json:"transaction"`
	Message     string      `json:"message"`
}

// DetectionResult результат прохода детектора по операциям задания
type DetectionResult struct {
	Aggregates []MonthlyAggregate `json:"aggregates"`
	Trends     []Trend            `json:"trends"`
	Anomalies  []Anomaly          `json:"anomalies"`
}

// FacetScores независимо рассчитанные показатели риска.
// Все показатели ориентированы на риск: чем больше значение, тем выше риск.
type FacetScores struct {
	FraudScore           float64  `json:"fraudScore"`
	BankingBehaviorScore float64  `json:"bankingBehaviorScore"`
	ObligationRatio      float64  `json:"obligationRatio"` // в процентах от дохода
	FraudFlags           []string `json:"fraudFlags,omitempty"`
}

// FacetScoresUpdate частичное обновление показателей; nil поле не меняется
type FacetScoresUpdate struct {
	FraudScore           *float64 `json:"fraudScore"`
	BankingBehaviorScore *float64 `json:"bankingBehaviorScore"`
	ObligationRatio      *float64 `json:"obligationRatio"`
}

// FraudAssessment результат эвристической проверки на мошенничество
type FraudAssessment struct {
	Score float64  `json:"score"`
	Level string   `json:"level"`
	Flags []string `json:"flags"`
}

const (
	RiskLevelNone     = "no_risk"
	RiskLevelLow      = "low"
	RiskLevelMedium   = "medium"
	RiskLevelHigh     = "high"
	RiskLevelCritical = "critical"
)

// Alert предупреждение для дашборда
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// RiskSnapshot полное состояние риска задания на момент расчета.
// Каждый пересчет создает новый снимок, подписчику достаточно последнего.
type RiskSnapshot struct {
	JobID                string    `json:"jobId"`
	Version              int64     `json:"version"` // номер снимка в пределах задания, растет с каждым пересчетом
	OverallRiskScore     float64   `json:"overallRiskScore"`
	RiskLevel            string    `json:"riskLevel"`
	FraudScore           float64   `json:"fraudScore"`
	BankingBehaviorScore float64   `json:"bankingBehaviorScore"`
	ObligationRatio      float64   `json:"obligationRatio"`
	Trends               []Trend   `json:"trends"`
	Anomalies            []Anomaly `json:"anomalies"`
	Alerts               []Alert   `json:"alerts"`
	TransactionCount     int       `json:"transactionCount"`
	GeneratedAt          time.Time `json:"timestamp"`
}
