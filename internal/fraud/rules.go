package fraud

import (
	"fmt"
	"math"
	"strings"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/risk"
)

const (
	DefaultLargeDebitThreshold = 5000.0

	gamblingPoints     = 30
	chequeReturnPoints = 15
	chequeReturnCap    = 60
	blacklistPoints    = 100 // Автоматически critical
	largeDebitPoints   = 10
	largeDebitCap      = 30
	maxScore           = 100
)

const (
	FlagGambling            = "gambling_activity"
	FlagChequeReturns       = "cheque_returns"
	FlagBlacklistedMerchant = "blacklisted_merchant"
	FlagLargeDebits         = "large_debits"
)

var gamblingKeywords = []string{
	"betting", "bet365", "betway", "casino", "gamble", "gambling", "lottery", "rummy", "poker",
}

var chequeReturnKeywords = []string{
	"cheque return", "chq ret", "return cheque", "bounced cheque", "chq bounce",
	"insufficient funds", "refer to drawer", "payment stopped",
}

// MerchantBlacklist источник черного списка мерчантов
type MerchantBlacklist interface {
	BlacklistedMerchants() ([]string, error)
}

// HeuristicScorer оценивает риск мошенничества по операциям задания,
// когда внешняя оценка отсутствует
type HeuristicScorer struct {
	blacklist           MerchantBlacklist
	largeDebitThreshold float64
}

func NewHeuristicScorer(blacklist MerchantBlacklist, largeDebitThreshold float64) *HeuristicScorer {
	if largeDebitThreshold <= 0 {
		largeDebitThreshold = DefaultLargeDebitThreshold
	}
	return &HeuristicScorer{
		blacklist:           blacklist,
		largeDebitThreshold: largeDebitThreshold,
	}
}

// WithoutBlacklist возвращает копию без проверки черного списка
func (s *HeuristicScorer) WithoutBlacklist() *HeuristicScorer {
	return &HeuristicScorer{largeDebitThreshold: s.largeDebitThreshold}
}

// Assess выполняет эвристическую проверку операций
func (s *HeuristicScorer) Assess(transactions []models.Transaction) (*models.FraudAssessment, error) {
	var merchants []string
	if s.blacklist != nil {
		list, err := s.blacklist.BlacklistedMerchants()
		if err != nil {
			return nil, fmt.Errorf("failed to load merchant blacklist: %w", err)
		}
		for _, merchant := range list {
			if merchant = strings.ToLower(strings.TrimSpace(merchant)); merchant != "" {
				merchants = append(merchants, merchant)
			}
		}
	}

	score := 0
	flags := []string{}

	var gambling, chequeReturns, blacklisted, largeDebits int
	for _, tx := range transactions {
		description := strings.ToLower(tx.Description)

		// 1. Азартные игры
		if tx.Category == "Gambling" || containsAny(description, gamblingKeywords) {
			gambling++
		}

		// 2. Возвраты чеков
		if IsChequeReturn(description) {
			chequeReturns++
		}

		// 3. Черный список мерчантов
		if containsAny(description, merchants) {
			blacklisted++
		}

		// 4. Крупные списания
		if tx.IsDebit() && math.Abs(tx.Amount) > s.largeDebitThreshold {
			largeDebits++
		}
	}

	if gambling > 0 {
		score += gamblingPoints
		flags = append(flags, FlagGambling)
	}
	if chequeReturns > 0 {
		score += min(chequeReturns*chequeReturnPoints, chequeReturnCap)
		flags = append(flags, FlagChequeReturns)
	}
	if blacklisted > 0 {
		score += blacklistPoints
		flags = append(flags, FlagBlacklistedMerchant)
	}
	if largeDebits > 0 {
		score += min(largeDebits*largeDebitPoints, largeDebitCap)
		flags = append(flags, FlagLargeDebits)
	}

	score = min(score, maxScore)

	return &models.FraudAssessment{
		Score: float64(score),
		Level: risk.CalculateRiskLevel(float64(score)),
		Flags: flags,
	}, nil
}

// IsChequeReturn сообщает, описывает ли строка возврат чека
func IsChequeReturn(description string) bool {
	return containsAny(strings.ToLower(description), chequeReturnKeywords)
}

func containsAny(description string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(description, keyword) {
			return true
		}
	}
	return false
}
