package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/categorizer"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

const (
	ProfileLow    = "low"
	ProfileMedium = "medium"
	ProfileHigh   = "high"

	DefaultMonths   = 3
	DefaultPerMonth = 12
	MaxMonths       = 24
	MaxPerMonth     = 100
)

// Категории, которые генератор не использует для обычных покупок
var reservedCategories = map[string]bool{
	categorizer.CategorySalary:        true,
	categorizer.CategoryLoanRepayment: true,
	categorizer.CategoryOverdraft:     true,
	"Gambling":                        true,
}

var chequeReturnDescriptions = []string{
	"CHQ RET insufficient funds",
	"Cheque return refer to drawer",
	"Bounced cheque fee",
}

// StatementGenerator генерирует демонстрационные выписки
type StatementGenerator struct {
	rand      *rand.Rand
	merchants []string
	now       func() time.Time
}

func NewStatementGenerator() *StatementGenerator {
	return NewSeededGenerator(time.Now().UnixNano())
}

// NewSeededGenerator создает генератор с воспроизводимой последовательностью
func NewSeededGenerator(seed int64) *StatementGenerator {
	var merchants []string
	for _, rule := range categorizer.DefaultRules() {
		if !reservedCategories[rule.Category] {
			merchants = append(merchants, rule.Key)
		}
	}

	return &StatementGenerator{
		rand:      rand.New(rand.NewSource(seed)),
		merchants: merchants,
		now:       time.Now,
	}
}

// WithClock задает текущее время генератора
func (g *StatementGenerator) WithClock(now func() time.Time) *StatementGenerator {
	g.now = now
	return g
}

// GenerateStatement генерирует строки выписки за months месяцев, заканчивая текущим.
// Профиль medium добавляет крупные списания в последнем месяце,
// профиль high также азартные игры и возвраты чеков.
func (g *StatementGenerator) GenerateStatement(months, perMonth int, profile string) []models.TransactionInput {
	months = bound(months, DefaultMonths, MaxMonths)
	perMonth = bound(perMonth, DefaultPerMonth, MaxPerMonth)

	now := g.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var statement []models.TransactionInput
	for m := months - 1; m >= 0; m-- {
		monthStart := current.AddDate(0, -m, 0)
		latest := m == 0

		statement = append(statement, g.line(monthStart, 1, "PAYROLL ACME CORP", g.amount(45000, 60000)))
		for i := 0; i < perMonth; i++ {
			statement = append(statement, g.line(monthStart, g.day(), g.merchantDescription(), -g.amount(50, 2500)))
		}

		if !latest {
			continue
		}
		switch profile {
		case ProfileHigh:
			statement = append(statement,
				g.line(monthStart, g.day(), "CASINO ROYALE online", -g.amount(2000, 8000)),
				g.line(monthStart, g.day(), "State lottery tickets", -g.amount(100, 500)),
			)
			for _, description := range chequeReturnDescriptions[:1+g.rand.Intn(len(chequeReturnDescriptions))] {
				statement = append(statement, g.line(monthStart, g.day(), description, -g.amount(300, 900)))
			}
			fallthrough
		case ProfileMedium:
			for i := 0; i < 2; i++ {
				statement = append(statement, g.line(monthStart, g.day(), g.merchantDescription(), -g.amount(12000, 30000)))
			}
		}
	}

	for i := range statement {
		statement[i].ID = fmt.Sprintf("GEN-%04d", i+1)
	}
	return statement
}

func (g *StatementGenerator) line(month time.Time, day int, description string, amount float64) models.TransactionInput {
	return models.TransactionInput{
		Date:        month.AddDate(0, 0, day-1).Format(models.DateLayout),
		Description: description,
		Amount:      amount,
	}
}

func (g *StatementGenerator) merchantDescription() string {
	merchant := g.merchants[g.rand.Intn(len(g.merchants))]
	return fmt.Sprintf("%s #%d", strings.ToUpper(merchant), 1000+g.rand.Intn(9000))
}

// day выбирает день, существующий в любом месяце
func (g *StatementGenerator) day() int {
	return 1 + g.rand.Intn(28)
}

func (g *StatementGenerator) amount(lo, hi float64) float64 {
	return roundToTwoDecimals(lo + g.rand.Float64()*(hi-lo))
}

func bound(value, def, limit int) int {
	if value <= 0 {
		return def
	}
	if value > limit {
		return limit
	}
	return value
}

// roundToTwoDecimals округляет число до 2 знаков после запятой
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
