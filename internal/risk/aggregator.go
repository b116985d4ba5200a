package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

const (
	// TrendAlertThreshold рост расходов категории (в процентах), при котором выдается предупреждение
	TrendAlertThreshold = 50.0
	// ObligationAlertThreshold доля обязательств в доходе (в процентах), при которой выдается предупреждение
	ObligationAlertThreshold = 50.0
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Weights веса показателей в итоговом балле
type Weights struct {
	Fraud      float64
	Behavior   float64
	Obligation float64
}

// DefaultWeights возвращает веса по умолчанию
func DefaultWeights() Weights {
	return Weights{Fraud: 0.5, Behavior: 0.3, Obligation: 0.2}
}

// Aggregator сводит результат детектора и показатели риска в снимок
type Aggregator struct {
	weights Weights
	now     func() time.Time
}

// NewAggregator создает агрегатор. Отрицательные веса считаются нулевыми,
// при всех нулевых весах показатели учитываются поровну.
func NewAggregator(weights Weights) *Aggregator {
	weights.Fraud = math.Max(weights.Fraud, 0)
	weights.Behavior = math.Max(weights.Behavior, 0)
	weights.Obligation = math.Max(weights.Obligation, 0)
	if weights.Fraud+weights.Behavior+weights.Obligation == 0 {
		weights = Weights{Fraud: 1, Behavior: 1, Obligation: 1}
	}
	return &Aggregator{weights: weights, now: time.Now}
}

// WithClock подменяет источник времени снимка
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Weights возвращает действующие веса
func (a *Aggregator) Weights() Weights {
	return a.weights
}

// OverallScore взвешенное среднее показателей, каждый ограничен диапазоном 0-100
func (a *Aggregator) OverallScore(facets models.FacetScores) float64 {
	w := a.weights
	sum := w.Fraud*clamp(facets.FraudScore) +
		w.Behavior*clamp(facets.BankingBehaviorScore) +
		w.Obligation*clamp(facets.ObligationRatio)
	return roundScore(sum / (w.Fraud + w.Behavior + w.Obligation))
}

// Aggregate строит новый снимок риска задания
func (a *Aggregator) Aggregate(jobID string, detection models.DetectionResult, facets models.FacetScores, transactionCount int) *models.RiskSnapshot {
	overall := a.OverallScore(facets)
	level := CalculateRiskLevel(overall)

	trends := detection.Trends
	if trends == nil {
		trends = []models.Trend{}
	}
	anomalies := detection.Anomalies
	if anomalies == nil {
		anomalies = []models.Anomaly{}
	}

	return &models.RiskSnapshot{
		JobID:                jobID,
		OverallRiskScore:     overall,
		RiskLevel:            level,
		FraudScore:           roundScore(clamp(facets.FraudScore)),
		BankingBehaviorScore: roundScore(clamp(facets.BankingBehaviorScore)),
		ObligationRatio:      roundScore(clamp(facets.ObligationRatio)),
		Trends:               trends,
		Anomalies:            anomalies,
		Alerts:               buildAlerts(level, detection, facets),
		TransactionCount:     transactionCount,
		GeneratedAt:          a.now().UTC(),
	}
}

// CalculateRiskLevel определяет уровень риска на основе итогового балла
func CalculateRiskLevel(score float64) string {
	switch {
	case score < 20:
		return models.RiskLevelNone
	case score < 40:
		return models.RiskLevelLow
	case score < 60:
		return models.RiskLevelMedium
	case score < 80:
		return models.RiskLevelHigh
	default:
		return models.RiskLevelCritical
	}
}

func buildAlerts(level string, detection models.DetectionResult, facets models.FacetScores) []models.Alert {
	alerts := []models.Alert{}

	for _, flag := range facets.FraudFlags {
		alerts = append(alerts, models.Alert{
			Type:     "fraud_indicator",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("fraud indicator detected: %s", flag),
		})
	}

	if n := len(detection.Anomalies); n > 0 {
		alerts = append(alerts, models.Alert{
			Type:     "anomalies",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d unusual transaction(s) detected", n),
		})
	}

	for _, trend := range detection.Trends {
		if trend.ChangePercentage > TrendAlertThreshold {
			alerts = append(alerts, models.Alert{
				Type:     "spending_trend",
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("spending on %s up %.2f%% against average", trend.Category, trend.ChangePercentage),
			})
		}
	}

	if facets.ObligationRatio > ObligationAlertThreshold {
		alerts = append(alerts, models.Alert{
			Type:     "high_obligations",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("obligations take %.2f%% of income", facets.ObligationRatio),
		})
	}

	if level == models.RiskLevelHigh || level == models.RiskLevelCritical {
		severity := SeverityWarning
		if level == models.RiskLevelCritical {
			severity = SeverityCritical
		}
		alerts = append(alerts, models.Alert{
			Type:     "overall_risk",
			Severity: severity,
			Message:  fmt.Sprintf("overall risk level is %s", level),
		})
	}

	return alerts
}

func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Min(math.Max(score, 0), 100)
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
