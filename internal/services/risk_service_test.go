package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	kafkamocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/kafka/mocks"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	redismocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis/mocks"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
	storagemocks "github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recorder фиксирует порядок вызовов приемников снимка
type recorder struct {
	mu        sync.Mutex
	calls     []string
	published []*models.RiskSnapshot
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) Publish(snapshot *models.RiskSnapshot) int {
	r.add("publish")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, snapshot)
	return 1
}

type fixture struct {
	repo      *storagemocks.MockJobRepository
	cache     *redismocks.MockClientInterface
	producer  *kafkamocks.MockProducer
	publisher *recorder
	service   RiskService
	versions  atomic.Int64
}

// nextVersion выдает номера снимков как счетчик хранилища
func (f *fixture) nextVersion(string) int64 {
	return f.versions.Add(1)
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(storagemocks.MockJobRepository),
		cache:     new(redismocks.MockClientInterface),
		producer:  new(kafkamocks.MockProducer),
		publisher: &recorder{},
	}
	f.service = NewRiskService(Options{
		Repository: f.repo,
		Cache:      f.cache,
		Producer:   f.producer,
		Publisher:  f.publisher,
		Logger:     zerolog.Nop(),
	})
	return f
}

// expectReanalysis настраивает успешный пересчет задания J1
func (f *fixture) expectReanalysis(facets models.FacetScoresUpdate) {
	f.repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1", UserID: "U1"}, nil)
	f.repo.On("GetTransactions", "J1").Return(statement(), nil)
	f.repo.On("NextSnapshotVersion", "J1").Return(f.nextVersion, nil)
	f.cache.On("GetFacetScores", "J1").Return(facets, nil)
	f.repo.On("SaveSnapshot", mock.AnythingOfType("*models.RiskSnapshot")).
		Run(func(mock.Arguments) { f.publisher.add("sqlite") }).Return(nil)
	f.cache.On("CacheSnapshot", mock.AnythingOfType("*models.RiskSnapshot")).
		Run(func(mock.Arguments) { f.publisher.add("redis") }).Return(nil)
	f.producer.On("SendSnapshotEvent", mock.AnythingOfType("*models.SnapshotEvent")).
		Run(func(mock.Arguments) { f.publisher.add("kafka") }).Return(nil)
	f.cache.On("IncrementRiskStats", mock.AnythingOfType("string")).Return(nil)
	f.repo.On("UpdateJobStatus", "J1", models.JobStatusCompleted).Return(nil)
}

func TestRiskService_CreateJob(t *testing.T) {
	f := newFixture()
	f.repo.On("CreateJob", mock.AnythingOfType("*models.AnalysisJob")).Return(nil)

	job, err := f.service.CreateJob("U1", &models.CreateJobRequest{Name: " March statements "})

	require.NoError(t, err)
	assert.Contains(t, job.ID, "job_")
	assert.Equal(t, "U1", job.UserID)
	assert.Equal(t, "March statements", job.Name)
	assert.Equal(t, models.JobStatusPending, job.Status)
	f.repo.AssertExpectations(t)
}

func TestRiskService_CreateJob_Invalid(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateJob("U1", &models.CreateJobRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.CreateJob("", &models.CreateJobRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.repo.AssertNotCalled(t, "CreateJob", mock.Anything)
}

func TestRiskService_Reanalyze_SinkOrder(t *testing.T) {
	f := newFixture()
	f.expectReanalysis(models.FacetScoresUpdate{
		FraudScore:           float(60),
		BankingBehaviorScore: float(50),
		ObligationRatio:      float(20),
	})

	snapshot, err := f.service.Reanalyze(context.Background(), "J1")

	require.NoError(t, err)
	assert.Equal(t, "J1", snapshot.JobID)
	assert.Equal(t, 49.0, snapshot.OverallRiskScore)
	assert.Equal(t, models.RiskLevelMedium, snapshot.RiskLevel)
	assert.Equal(t, 2, snapshot.TransactionCount)

	assert.Equal(t, int64(1), snapshot.Version)

	assert.Equal(t, []string{"sqlite", "redis", "publish", "kafka"}, f.publisher.calls)
	require.Len(t, f.publisher.published, 1)
	assert.Same(t, snapshot, f.publisher.published[0])

	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestRiskService_Reanalyze_SinkFailuresDoNotBlockBroadcast(t *testing.T) {
	f := newFixture()
	f.repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1"}, nil)
	f.repo.On("GetTransactions", "J1").Return(statement(), nil)
	f.repo.On("NextSnapshotVersion", "J1").Return(int64(3), nil)
	f.cache.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{}, nil)
	f.repo.On("SaveSnapshot", mock.Anything).Return(errors.New("disk full"))
	f.cache.On("CacheSnapshot", mock.Anything).Return(errors.New("connection refused"))
	f.producer.On("SendSnapshotEvent", mock.Anything).Return(errors.New("no brokers"))
	f.cache.On("IncrementRiskStats", mock.Anything).Return(errors.New("connection refused"))
	f.repo.On("UpdateJobStatus", "J1", models.JobStatusCompleted).Return(errors.New("disk full"))

	snapshot, err := f.service.Reanalyze(context.Background(), "J1")

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Len(t, f.publisher.published, 1)
	// Эвристика: операция с азартными играми
	assert.Equal(t, 30.0, snapshot.FraudScore)
}

func TestRiskService_Reanalyze_JobNotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetJob", "J9").Return(nil, storage.ErrJobNotFound)

	_, err := f.service.Reanalyze(context.Background(), "J9")

	assert.ErrorIs(t, err, storage.ErrJobNotFound)
	assert.Empty(t, f.publisher.published)
}

func TestRiskService_ClearTransactions(t *testing.T) {
	f := newFixture()
	f.repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1", UserID: "U1"}, nil)
	f.repo.On("ClearJob", "J1").Run(func(mock.Arguments) { f.publisher.add("clear") }).Return(nil)
	f.cache.On("ClearJobData", "J1").Return(errors.New("connection refused"))
	f.repo.On("GetTransactions", "J1").Return([]models.Transaction{}, nil)
	f.repo.On("NextSnapshotVersion", "J1").Return(int64(8), nil)
	f.cache.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{}, nil)
	f.repo.On("SaveSnapshot", mock.Anything).Run(func(mock.Arguments) { f.publisher.add("sqlite") }).Return(nil)
	f.cache.On("CacheSnapshot", mock.Anything).Return(nil)
	f.producer.On("SendSnapshotEvent", mock.Anything).Return(nil)
	f.cache.On("IncrementRiskStats", models.RiskLevelNone).Return(nil)
	f.repo.On("UpdateJobStatus", "J1", models.JobStatusCompleted).Return(nil)

	snapshot, err := f.service.ClearTransactions(context.Background(), "J1")

	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.TransactionCount)
	assert.Equal(t, models.RiskLevelNone, snapshot.RiskLevel)
	assert.Equal(t, []string{"clear", "sqlite", "publish"}, f.publisher.calls)
	f.cache.AssertCalled(t, "ClearJobData", "J1")
}

func TestRiskService_ClearTransactions_Failures(t *testing.T) {
	f := newFixture()
	f.repo.On("GetJob", "J9").Return(nil, storage.ErrJobNotFound)
	f.repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1"}, nil)
	f.repo.On("ClearJob", "J1").Return(errors.New("database is locked"))

	_, err := f.service.ClearTransactions(context.Background(), "J9")
	assert.ErrorIs(t, err, storage.ErrJobNotFound)

	_, err = f.service.ClearTransactions(context.Background(), "J1")
	assert.ErrorContains(t, err, "database is locked")

	f.cache.AssertNotCalled(t, "ClearJobData", mock.Anything)
	assert.Empty(t, f.publisher.published)
}

func TestRiskService_Reanalyze_VersionFailureStopsPublishing(t *testing.T) {
	f := newFixture()
	f.repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1"}, nil)
	f.repo.On("GetTransactions", "J1").Return(statement(), nil)
	f.cache.On("GetFacetScores", "J1").Return(models.FacetScoresUpdate{}, nil)
	f.repo.On("NextSnapshotVersion", "J1").Return(int64(0), errors.New("database is locked"))

	_, err := f.service.Reanalyze(context.Background(), "J1")

	assert.ErrorContains(t, err, "database is locked")
	f.repo.AssertNotCalled(t, "SaveSnapshot", mock.Anything)
	assert.Empty(t, f.publisher.published)
}

func TestRiskService_Reanalyze_WithoutOptionalSinks(t *testing.T) {
	repo := new(storagemocks.MockJobRepository)
	repo.On("GetJob", "J1").Return(&models.AnalysisJob{ID: "J1"}, nil)
	repo.On("GetTransactions", "J1").Return([]models.Transaction{}, nil)
	repo.On("NextSnapshotVersion", "J1").Return(int64(1), nil)
	repo.On("SaveSnapshot", mock.Anything).Return(nil)
	repo.On("UpdateJobStatus", "J1", models.JobStatusCompleted).Return(nil)

	service := NewRiskService(Options{Repository: repo, Logger: zerolog.Nop()})
	snapshot, err := service.Reanalyze(context.Background(), "J1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, snapshot.OverallRiskScore)
	assert.Equal(t, models.RiskLevelNone, snapshot.RiskLevel)
	assert.Empty(t, snapshot.Trends)
	assert.Empty(t, snapshot.Anomalies)

	stats, err := service.RiskStats()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestRiskService_IngestTransactions(t *testing.T) {
	f := newFixture()
	f.expectReanalysis(models.FacetScoresUpdate{})

	var saved []models.Transaction
	f.repo.On("SaveTransactions", "J1", mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]models.Transaction) }).
		Return(nil)

	snapshot, err := f.service.IngestTransactions(context.Background(), "J1", []models.TransactionInput{
		{ID: "t1", Date: "2024-03-05", Description: "DOORDASH order 991", Amount: -450},
		{Date: "2024-03-06", Description: "Refund", Amount: 120, Category: "Refunds"},
	})

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.Len(t, saved, 2)
	assert.Equal(t, "Food Delivery", saved[0].Category)
	assert.Equal(t, "Refunds", saved[1].Category)
	assert.Contains(t, saved[1].ID, "txn_")
	assert.Equal(t, "J1", saved[1].JobID)
}

func TestRiskService_IngestTransactions_InvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.service.IngestTransactions(context.Background(), "J1", []models.TransactionInput{
		{Date: "05/03/2024", Description: "DoorDash", Amount: -1},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.repo.AssertNotCalled(t, "SaveTransactions", mock.Anything, mock.Anything)
}

func TestRiskService_CorrectCategory(t *testing.T) {
	f := newFixture()
	f.expectReanalysis(models.FacetScoresUpdate{})
	f.repo.On("UpdateTransactionCategory", "J1", "t1", "Entertainment").Return(nil)

	_, err := f.service.CorrectCategory(context.Background(), "J1", "t1", " Entertainment ")

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestRiskService_CorrectCategory_UnknownTransaction(t *testing.T) {
	f := newFixture()
	f.repo.On("UpdateTransactionCategory", "J1", "t9", "Shopping").Return(storage.ErrTransactionNotFound)

	_, err := f.service.CorrectCategory(context.Background(), "J1", "t9", "Shopping")

	assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
	assert.Empty(t, f.publisher.published)
}

func TestRiskService_SaveFacetScores(t *testing.T) {
	f := newFixture()
	update := models.FacetScoresUpdate{ObligationRatio: float(70)}
	f.cache.On("SaveFacetScores", "J1", update).Return(nil)
	f.expectReanalysis(update)

	snapshot, err := f.service.SaveFacetScores(context.Background(), "J1", update)

	require.NoError(t, err)
	assert.Equal(t, 70.0, snapshot.ObligationRatio)
}

func TestRiskService_SaveFacetScores_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.service.SaveFacetScores(context.Background(), "J1", models.FacetScoresUpdate{FraudScore: float(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	service := NewRiskService(Options{Repository: f.repo, Logger: zerolog.Nop()})
	_, err = service.SaveFacetScores(context.Background(), "J1", models.FacetScoresUpdate{FraudScore: float(1)})
	assert.ErrorIs(t, err, ErrFacetStoreRequired)
}

func TestRiskService_ConcurrentReanalysisPublishesInOrder(t *testing.T) {
	f := newFixture()
	f.expectReanalysis(models.FacetScoresUpdate{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Reanalyze(context.Background(), "J1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, f.publisher.published, 10)
	for i := 1; i < len(f.publisher.published); i++ {
		prev, next := f.publisher.published[i-1], f.publisher.published[i]
		assert.Equal(t, prev.Version+1, next.Version)
	}
}

func TestRiskService_Categorize(t *testing.T) {
	f := newFixture()

	assert.Equal(t, "Coffee Shops", f.service.Categorize("STARBUCKS #1123"))
	assert.Equal(t, models.CategoryUncategorized, f.service.Categorize("unknown merchant"))
}
