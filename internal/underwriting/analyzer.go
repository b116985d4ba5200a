package underwriting

import (
	"math"
	"sort"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/categorizer"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/fraud"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/shopspring/decimal"
)

const (
	chequeReturnPoints = 15
	chequeReturnCap    = 45
	overdraftPoints    = 5
	overdraftCap       = 25
	volatilityWeight   = 0.3 // волатильность 100% дает 30 баллов
	maxScore           = 100
)

// Analyzer рассчитывает долговую нагрузку и поведенческий риск по операциям задания,
// когда внешние показатели отсутствуют. Операции классифицируются таблицей категоризатора,
// категория, заданная пользователем, имеет приоритет.
type Analyzer struct {
	categorizer *categorizer.Categorizer
}

func NewAnalyzer(c *categorizer.Categorizer) *Analyzer {
	if c == nil {
		c = categorizer.Default()
	}
	return &Analyzer{categorizer: c}
}

// ObligationRatio возвращает долю платежей по кредитам в зарплатных поступлениях, в процентах.
// Без зарплатных поступлений возвращает 0.
func (a *Analyzer) ObligationRatio(transactions []models.Transaction) float64 {
	income := decimal.Zero
	obligations := decimal.Zero

	for _, tx := range transactions {
		if !finite(tx.Amount) {
			continue
		}
		switch category := a.category(tx); {
		case category == categorizer.CategorySalary && tx.Amount > 0:
			income = income.Add(decimal.NewFromFloat(tx.Amount))
		case category == categorizer.CategoryLoanRepayment && tx.IsDebit():
			obligations = obligations.Add(decimal.NewFromFloat(tx.Amount).Abs())
		}
	}

	if !income.IsPositive() {
		return 0
	}
	ratio, _ := obligations.Div(income).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return ratio
}

// BehaviorScore возвращает поведенческий риск от 0 до 100.
// Учитываются возвраты чеков, операции овердрафта и волатильность остатка,
// восстановленного по операциям в порядке дат.
func (a *Analyzer) BehaviorScore(transactions []models.Transaction) float64 {
	var valid []models.Transaction
	for _, tx := range transactions {
		if finite(tx.Amount) {
			valid = append(valid, tx)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	var chequeReturns, overdrafts int
	for _, tx := range valid {
		if fraud.IsChequeReturn(tx.Description) {
			chequeReturns++
		}
		if a.category(tx) == categorizer.CategoryOverdraft {
			overdrafts++
		}
	}

	score := float64(min(chequeReturns*chequeReturnPoints, chequeReturnCap))
	score += float64(min(overdrafts*overdraftPoints, overdraftCap))
	score += volatilityWeight * BalanceVolatility(valid)

	return math.Round(math.Min(score, maxScore)*100) / 100
}

// BalanceVolatility возвращает коэффициент вариации остатка в процентах, не больше 100.
// Остаток считается накопленной суммой операций от нуля.
// Неположительный средний остаток дает максимальную волатильность.
func BalanceVolatility(transactions []models.Transaction) float64 {
	if len(transactions) < 2 {
		return 0
	}

	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balances := make([]float64, len(ordered))
	balance, sum := 0.0, 0.0
	for i, tx := range ordered {
		balance += tx.Amount
		balances[i] = balance
		sum += balance
	}

	mean := sum / float64(len(balances))
	if mean <= 0 {
		return maxScore
	}

	variance := 0.0
	for _, b := range balances {
		variance += (b - mean) * (b - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(balances)))

	return math.Min(maxScore, stdDev/mean*100)
}

func (a *Analyzer) category(tx models.Transaction) string {
	if tx.IsCategorized() {
		return tx.Category
	}
	return a.categorizer.Categorize(tx.Description)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
