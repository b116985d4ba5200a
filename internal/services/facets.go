package services

import (
	"context"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/fraud"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/underwriting"

	"github.com/rs/zerolog"
)

// FacetStore хранилище внешних показателей
type FacetStore interface {
	GetFacetScores(jobID string) (models.FacetScoresUpdate, error)
}

// FacetProvider собирает показатели риска задания.
// Сохраненные внешние показатели имеют приоритет. Недостающие показатели
// рассчитываются по операциям: мошенничество эвристикой, поведение и
// долговая нагрузка анализатором.
type FacetProvider struct {
	store    FacetStore
	scorer   *fraud.HeuristicScorer
	analyzer *underwriting.Analyzer
	log      zerolog.Logger
}

func NewFacetProvider(store FacetStore, scorer *fraud.HeuristicScorer, analyzer *underwriting.Analyzer, log zerolog.Logger) *FacetProvider {
	if scorer == nil {
		scorer = fraud.NewHeuristicScorer(nil, fraud.DefaultLargeDebitThreshold)
	}
	if analyzer == nil {
		analyzer = underwriting.NewAnalyzer(nil)
	}
	return &FacetProvider{
		store:    store,
		scorer:   scorer,
		analyzer: analyzer,
		log:      log.With().Str("component", "facets").Logger(),
	}
}

func (p *FacetProvider) Facets(ctx context.Context, jobID string, transactions []models.Transaction) (models.FacetScores, error) {
	var facets models.FacetScores
	if err := ctx.Err(); err != nil {
		return facets, err
	}

	var stored models.FacetScoresUpdate
	if p.store != nil {
		var err error
		stored, err = p.store.GetFacetScores(jobID)
		if err != nil {
			p.log.Warn().Err(err).Str("job_id", jobID).Msg("Stored facet scores unavailable")
			stored = models.FacetScoresUpdate{}
		}
	}

	if stored.BankingBehaviorScore != nil {
		facets.BankingBehaviorScore = *stored.BankingBehaviorScore
	} else {
		facets.BankingBehaviorScore = p.analyzer.BehaviorScore(transactions)
	}
	if stored.ObligationRatio != nil {
		facets.ObligationRatio = *stored.ObligationRatio
	} else {
		facets.ObligationRatio = p.analyzer.ObligationRatio(transactions)
	}
	if stored.FraudScore != nil {
		facets.FraudScore = *stored.FraudScore
		return facets, nil
	}

	assessment, err := p.scorer.Assess(transactions)
	if err != nil {
		p.log.Warn().Err(err).Str("job_id", jobID).Msg("Fraud heuristic degraded to offline rules")
		assessment, err = p.scorer.WithoutBlacklist().Assess(transactions)
		if err != nil {
			return facets, err
		}
	}

	facets.FraudScore = assessment.Score
	facets.FraudFlags = assessment.Flags
	return facets, nil
}
