package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/categorizer"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/kafka"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/risk"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/trends"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/underwriting"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const serviceName = "risk-stream-service"

// Options зависимости сервиса анализа. Cache, Producer и Publisher необязательны.
type Options struct {
	Repository  storage.JobRepository
	Cache       redis.ClientInterface
	Producer    kafka.Producer
	Publisher   SnapshotPublisher
	Facets      FacetSource
	Categorizer *categorizer.Categorizer
	Detector    *trends.Detector
	Aggregator  *risk.Aggregator
	Logger      zerolog.Logger
}

// RiskServiceImpl реализует интерфейс RiskService
type RiskServiceImpl struct {
	repo        storage.JobRepository
	cache       redis.ClientInterface
	producer    kafka.Producer
	publisher   SnapshotPublisher
	facets      FacetSource
	reader      *SnapshotReader
	categorizer *categorizer.Categorizer
	detector    *trends.Detector
	aggregator  *risk.Aggregator
	locks       *keyedMutex
	log         zerolog.Logger
}

// NewRiskService создает сервис анализа заданий
func NewRiskService(opts Options) RiskService {
	s := &RiskServiceImpl{
		repo:        opts.Repository,
		cache:       opts.Cache,
		producer:    opts.Producer,
		publisher:   opts.Publisher,
		facets:      opts.Facets,
		categorizer: opts.Categorizer,
		detector:    opts.Detector,
		aggregator:  opts.Aggregator,
		locks:       newKeyedMutex(),
		log:         opts.Logger.With().Str("component", "analysis").Logger(),
	}

	if s.categorizer == nil {
		s.categorizer = categorizer.Default()
	}
	if s.detector == nil {
		s.detector = trends.NewDetector(trends.DefaultConfig())
	}
	if s.aggregator == nil {
		s.aggregator = risk.NewAggregator(risk.DefaultWeights())
	}
	if s.facets == nil {
		var store FacetStore
		if s.cache != nil {
			store = s.cache
		}
		s.facets = NewFacetProvider(store, nil, underwriting.NewAnalyzer(s.categorizer), opts.Logger)
	}

	var cache SnapshotCache
	if s.cache != nil {
		cache = s.cache
	}
	s.reader = NewSnapshotReader(cache, s.repo, opts.Logger)

	return s
}

func (s *RiskServiceImpl) CreateJob(userID string, req *models.CreateJobRequest) (*models.AnalysisJob, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: job name is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	job := &models.AnalysisJob{
		ID:        "job_" + uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Status:    models.JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateJob(job); err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", job.ID).Str("user_id", userID).Msg("Job created")
	return job, nil
}

func (s *RiskServiceImpl) OwnerOf(jobID string) (string, error) {
	return s.repo.OwnerOf(jobID)
}

func (s *RiskServiceImpl) IngestTransactions(ctx context.Context, jobID string, inputs []models.TransactionInput) (*models.RiskSnapshot, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no transactions", ErrInvalidInput)
	}

	transactions := make([]models.Transaction, 0, len(inputs))
	for i, input := range inputs {
		tx, err := parseTransaction(jobID, input)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		transactions = append(transactions, tx)
	}

	categorized := s.categorizer.CategorizeAll(transactions)
	if err := s.repo.SaveTransactions(jobID, categorized); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventTransactionsIngested, serviceName, "sqlite", map[string]interface{}{
		"job_id": jobID,
		"count":  len(categorized),
	})

	return s.Reanalyze(ctx, jobID)
}

func parseTransaction(jobID string, input models.TransactionInput) (models.Transaction, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return models.Transaction{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = "txn_" + uuid.New().String()
	}

	return models.Transaction{
		ID:          id,
		JobID:       jobID,
		Date:        date,
		Description: description,
		Amount:      input.Amount,
		Category:    strings.TrimSpace(input.Category),
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if date, err := time.Parse(models.DateLayout, value); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, value)
}

func (s *RiskServiceImpl) CorrectCategory(ctx context.Context, jobID, transactionID, category string) (*models.RiskSnapshot, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	if err := s.repo.UpdateTransactionCategory(jobID, transactionID, category); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventCategoryCorrected, serviceName, "sqlite", map[string]interface{}{
		"job_id":         jobID,
		"transaction_id": transactionID,
		"category":       category,
	})

	return s.Reanalyze(ctx, jobID)
}

func (s *RiskServiceImpl) SaveFacetScores(ctx context.Context, jobID string, update models.FacetScoresUpdate) (*models.RiskSnapshot, error) {
	if s.cache == nil {
		return nil, ErrFacetStoreRequired
	}
	for name, value := range map[string]*float64{
		"fraudScore":           update.FraudScore,
		"bankingBehaviorScore": update.BankingBehaviorScore,
		"obligationRatio":      update.ObligationRatio,
	} {
		if value != nil && *value < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
	}

	if _, err := s.repo.GetJob(jobID); err != nil {
		return nil, err
	}
	if err := s.cache.SaveFacetScores(jobID, update); err != nil {
		return nil, fmt.Errorf("failed to save facet scores: %w", err)
	}

	return s.Reanalyze(ctx, jobID)
}

// ClearTransactions удаляет выписку задания. Внешние показатели из кэша тоже сбрасываются.
func (s *RiskServiceImpl) ClearTransactions(ctx context.Context, jobID string) (*models.RiskSnapshot, error) {
	if _, err := s.repo.GetJob(jobID); err != nil {
		return nil, err
	}
	if err := s.repo.ClearJob(jobID); err != nil {
		return nil, fmt.Errorf("failed to clear job: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.ClearJobData(jobID); err != nil {
			s.log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to clear cached job data")
		}
	}

	logger.LogEvent(logger.EventTransactionsCleared, serviceName, "sqlite", map[string]interface{}{
		"job_id": jobID,
	})

	return s.Reanalyze(ctx, jobID)
}

// Reanalyze пересчитывает риск задания. Пересчеты одного задания выполняются
// последовательно, поэтому снимки задания публикуются в порядке создания.
func (s *RiskServiceImpl) Reanalyze(ctx context.Context, jobID string) (*models.RiskSnapshot, error) {
	unlock := s.locks.Lock(jobID)
	defer unlock()

	if _, err := s.repo.GetJob(jobID); err != nil {
		return nil, err
	}

	transactions, err := s.repo.GetTransactions(jobID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Analyze(ctx, jobID, transactions)
	if err != nil {
		return nil, err
	}

	// Порядок снимков задается номером, а не временем создания
	snapshot.Version, err = s.repo.NextSnapshotVersion(jobID)
	if err != nil {
		return nil, err
	}

	s.publish(snapshot)

	if err := s.repo.UpdateJobStatus(jobID, models.JobStatusCompleted); err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to update job status")
	}

	return snapshot, nil
}

func (s *RiskServiceImpl) Analyze(ctx context.Context, jobID string, transactions []models.Transaction) (*models.RiskSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventAnalysisStarted, serviceName, "analysis", map[string]interface{}{
		"job_id":       jobID,
		"transactions": len(transactions),
	})

	categorized := s.categorizer.CategorizeAll(transactions)
	detection := s.detector.Detect(categorized)

	facets, err := s.facets.Facets(ctx, jobID, categorized)
	if err != nil {
		return nil, fmt.Errorf("failed to collect facet scores: %w", err)
	}

	snapshot := s.aggregator.Aggregate(jobID, detection, facets, len(categorized))

	logger.LogEvent(logger.EventAnalysisCompleted, serviceName, "analysis", map[string]interface{}{
		"job_id":     jobID,
		"risk_score": snapshot.OverallRiskScore,
		"risk_level": snapshot.RiskLevel,
		"anomalies":  len(snapshot.Anomalies),
	})

	return snapshot, nil
}

// publish передает снимок в хранилище, кэш, подписчикам и Kafka.
// Подписчики получают снимок до синхронной отправки в Kafka.
// Ошибки приемников только логируются и не мешают рассылке.
func (s *RiskServiceImpl) publish(snapshot *models.RiskSnapshot) {
	log := s.log.With().Str("job_id", snapshot.JobID).Logger()

	if err := s.repo.SaveSnapshot(snapshot); err != nil {
		log.Error().Err(err).Msg("Failed to persist snapshot")
	} else {
		logger.LogEvent(logger.EventSnapshotPersisted, serviceName, "sqlite", map[string]interface{}{
			"job_id": snapshot.JobID,
		})
	}

	if s.cache != nil {
		if err := s.cache.CacheSnapshot(snapshot); err != nil {
			log.Warn().Err(err).Msg("Failed to cache snapshot")
		} else {
			logger.LogEvent(logger.EventSnapshotCached, serviceName, "redis", map[string]interface{}{
				"job_id": snapshot.JobID,
			})
		}
	}

	if s.publisher != nil {
		delivered := s.publisher.Publish(snapshot)
		log.Debug().Int("subscribers", delivered).Msg("Snapshot broadcast")
	}

	if s.producer != nil {
		event := &models.SnapshotEvent{
			EventID:   "evt_" + uuid.New().String(),
			EventType: models.EventTypeSnapshotProduced,
			Timestamp: time.Now(),
			Data:      snapshot,
		}
		if err := s.producer.SendSnapshotEvent(event); err != nil {
			log.Warn().Err(err).Msg("Failed to send snapshot event")
		} else {
			logger.LogEvent(logger.EventKafkaSent, serviceName, "kafka", map[string]interface{}{
				"job_id":   snapshot.JobID,
				"event_id": event.EventID,
			})
		}
	}

	if s.cache != nil {
		if err := s.cache.IncrementRiskStats(snapshot.RiskLevel); err != nil {
			log.Warn().Err(err).Msg("Failed to update risk stats")
		}
	}
}

func (s *RiskServiceImpl) LatestSnapshot(jobID string) (*models.RiskSnapshot, error) {
	return s.reader.LatestSnapshot(jobID)
}

func (s *RiskServiceImpl) Categorize(description string) string {
	return s.categorizer.Categorize(description)
}

func (s *RiskServiceImpl) RiskStats() (map[string]int64, error) {
	if s.cache == nil {
		return map[string]int64{}, nil
	}
	return s.cache.GetRiskStats()
}
