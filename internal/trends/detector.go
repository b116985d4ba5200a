package trends

import (
	"fmt"
	"math"
	"sort"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// Config параметры детектора
type Config struct {
	// AnomalyMultiplier во сколько раз списание должно превышать средний размер списания категории
	AnomalyMultiplier float64
	// AnomalyFloor абсолютный порог, когда истории категории недостаточно
	AnomalyFloor float64
	// MinHistory минимальное число списаний категории для статистического порога
	MinHistory int
	// TrendThreshold тренды с |изменением| ниже порога (в процентах) не попадают в результат
	TrendThreshold float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		AnomalyMultiplier: 3.0,
		AnomalyFloor:      1000,
		MinHistory:        5,
		TrendThreshold:    0,
	}
}

// Detector строит месячные агрегаты, тренды и аномалии по операциям задания
type Detector struct {
	cfg Config
}

// NewDetector создает детектор; некорректные значения заменяются значениями по умолчанию
func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if !finite(cfg.AnomalyMultiplier) || cfg.AnomalyMultiplier <= 0 {
		cfg.AnomalyMultiplier = def.AnomalyMultiplier
	}
	if !finite(cfg.AnomalyFloor) || cfg.AnomalyFloor < 0 {
		cfg.AnomalyFloor = def.AnomalyFloor
	}
	if cfg.MinHistory < 1 {
		cfg.MinHistory = def.MinHistory
	}
	if !finite(cfg.TrendThreshold) || cfg.TrendThreshold < 0 {
		cfg.TrendThreshold = 0
	}
	return &Detector{cfg: cfg}
}

// Config возвращает действующую конфигурацию
func (d *Detector) Config() Config {
	return d.cfg
}

type bucketKey struct {
	category string
	month    string
}

type bucket struct {
	expenses decimal.Decimal
	income   decimal.Decimal
	count    int
}

// Detect выполняет полный проход по операциям.
// Результат зависит только от набора операций: порядок входа и текущее время не влияют.
// Операции с NaN или бесконечной суммой пропускаются.
func (d *Detector) Detect(transactions []models.Transaction) models.DetectionResult {
	result := models.DetectionResult{
		Aggregates: []models.MonthlyAggregate{},
		Trends:     []models.Trend{},
		Anomalies:  []models.Anomaly{},
	}
	valid := validTransactions(transactions)
	if len(valid) == 0 {
		return result
	}

	sorted := sortTransactions(valid)
	buckets := aggregate(sorted)

	result.Aggregates = buildAggregates(buckets)
	result.Trends = d.buildTrends(buckets)
	result.Anomalies = d.findAnomalies(sorted)
	return result
}

func validTransactions(transactions []models.Transaction) []models.Transaction {
	valid := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if finite(tx.Amount) {
			valid = append(valid, tx)
		}
	}
	return valid
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func sortTransactions(transactions []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

func categoryOf(tx models.Transaction) string {
	if tx.Category == "" {
		return models.CategoryUncategorized
	}
	return tx.Category
}

func aggregate(transactions []models.Transaction) map[bucketKey]*bucket {
	buckets := make(map[bucketKey]*bucket)
	for _, tx := range transactions {
		key := bucketKey{category: categoryOf(tx), month: tx.Date.Format(monthLayout)}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.IsDebit() {
			b.expenses = b.expenses.Add(amount.Abs())
		} else {
			b.income = b.income.Add(amount)
		}
		b.count++
	}
	return buckets
}

func sortedKeys(buckets map[bucketKey]*bucket) []bucketKey {
	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].month < keys[j].month
	})
	return keys
}

func buildAggregates(buckets map[bucketKey]*bucket) []models.MonthlyAggregate {
	aggregates := make([]models.MonthlyAggregate, 0, len(buckets))
	for _, key := range sortedKeys(buckets) {
		b := buckets[key]
		aggregates = append(aggregates, models.MonthlyAggregate{
			Category: key.category,
			Month:    key.month,
			Expenses: round(b.expenses),
			Income:   round(b.income),
			Count:    b.count,
		})
	}
	return aggregates
}

// buildTrends сравнивает расходы последнего месяца данных со средним по предыдущим месяцам данных
func (d *Detector) buildTrends(buckets map[bucketKey]*bucket) []models.Trend {
	monthSet := make(map[string]struct{})
	spending := make(map[string]map[string]decimal.Decimal)
	for key, b := range buckets {
		monthSet[key.month] = struct{}{}
		if b.expenses.IsZero() {
			continue
		}
		if spending[key.category] == nil {
			spending[key.category] = make(map[string]decimal.Decimal)
		}
		spending[key.category][key.month] = b.expenses
	}

	months := make([]string, 0, len(monthSet))
	for month := range monthSet {
		months = append(months, month)
	}
	sort.Strings(months)
	currentMonth := months[len(months)-1]
	previousMonths := months[:len(months)-1]

	categories := make([]string, 0, len(spending))
	for category := range spending {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	trends := make([]models.Trend, 0, len(categories))
	for _, category := range categories {
		byMonth := spending[category]
		current := byMonth[currentMonth]

		baseline := decimal.Zero
		if len(previousMonths) > 0 {
			total := decimal.Zero
			for _, month := range previousMonths {
				total = total.Add(byMonth[month])
			}
			baseline = total.Div(decimal.NewFromInt(int64(len(previousMonths))))
		}

		change := decimal.Zero
		if !baseline.IsZero() {
			change = current.Sub(baseline).Div(baseline).Mul(decimal.NewFromInt(100))
		}

		changeValue := round(change)
		if abs(changeValue) < d.cfg.TrendThreshold {
			continue
		}

		trends = append(trends, models.Trend{
			Category:             category,
			CurrentMonthSpending: round(current),
			AverageSpending:      round(baseline),
			ChangePercentage:     changeValue,
			Direction:            direction(changeValue),
		})
	}
	return trends
}

// findAnomalies помечает списания, превышающие порог категории
func (d *Detector) findAnomalies(transactions []models.Transaction) []models.Anomaly {
	type stats struct {
		total decimal.Decimal
		count int
	}
	byCategory := make(map[string]*stats)
	for _, tx := range transactions {
		if !tx.IsDebit() {
			continue
		}
		category := categoryOf(tx)
		s, ok := byCategory[category]
		if !ok {
			s = &stats{}
			byCategory[category] = s
		}
		s.total = s.total.Add(decimal.NewFromFloat(tx.Amount).Abs())
		s.count++
	}

	anomalies := []models.Anomaly{}
	for _, tx := range transactions {
		if !tx.IsDebit() {
			continue
		}
		category := categoryOf(tx)
		threshold := d.threshold(byCategory[category].total, byCategory[category].count)
		magnitude := decimal.NewFromFloat(tx.Amount).Abs()
		if !magnitude.GreaterThan(threshold) {
			continue
		}
		limit, _ := threshold.Round(2).Float64()
		anomalies = append(anomalies, models.Anomaly{
			Transaction: tx,
			Message: fmt.Sprintf("unusually large debit of %.2f for category %s (threshold %.2f)",
				round(magnitude), category, limit),
		})
	}
	return anomalies
}

func (d *Detector) threshold(total decimal.Decimal, count int) decimal.Decimal {
	if count < d.cfg.MinHistory {
		return decimal.NewFromFloat(d.cfg.AnomalyFloor)
	}
	mean := total.Div(decimal.NewFromInt(int64(count)))
	return mean.Mul(decimal.NewFromFloat(d.cfg.AnomalyMultiplier))
}

func direction(change float64) string {
	switch {
	case change > 0:
		return models.TrendIncrease
	case change < 0:
		return models.TrendDecrease
	default:
		return models.TrendStable
	}
}

func round(value decimal.Decimal) float64 {
	f, _ := value.Round(2).Float64()
	return f
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
