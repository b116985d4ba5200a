package categorizer

import (
	"strings"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// Categorizer назначает категорию по упорядоченной таблице правил.
// Таблица фиксируется при создании и дальше только читается.
type Categorizer struct {
	rules []Rule
}

// New создает категоризатор; ключи приводятся к нижнему регистру, порядок сохраняется
func New(rules []Rule) *Categorizer {
	normalized := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		key := strings.ToLower(strings.TrimSpace(rule.Key))
		if key == "" || rule.Category == "" {
			continue
		}
		normalized = append(normalized, Rule{Key: key, Category: rule.Category})
	}
	return &Categorizer{rules: normalized}
}

// Default создает категоризатор со встроенной таблицей
func Default() *Categorizer {
	return New(defaultRules)
}

// Categorize возвращает категорию первого подходящего правила или Uncategorized
func (c *Categorizer) Categorize(description string) string {
	lowered := strings.ToLower(description)
	for _, rule := range c.rules {
		if strings.Contains(lowered, rule.Key) {
			return rule.Category
		}
	}
	return models.CategoryUncategorized
}

// CategorizeAll возвращает копию операций с назначенными категориями.
// Категории, уже заданные пользователем, не перезаписываются.
func (c *Categorizer) CategorizeAll(transactions []models.Transaction) []models.Transaction {
	result := make([]models.Transaction, len(transactions))
	for i, tx := range transactions {
		if !tx.IsCategorized() {
			tx.Category = c.Categorize(tx.Description)
		}
		result[i] = tx
	}
	return result
}

// Rules возвращает копию действующей таблицы
func (c *Categorizer) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}
