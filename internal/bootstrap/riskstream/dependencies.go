package riskstream

import (
	"errors"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/categorizer"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/fraud"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/grpc"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/kafka"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/redis"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/risk"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/services"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage/sqlite"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/stream"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/subscription"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/trends"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/underwriting"

	"github.com/rs/zerolog"
)

// Dependencies содержит все зависимости risk stream service
type Dependencies struct {
	StorageConn   *sqlite.SQLiteStorage
	StorageRepo   storage.JobRepository
	RedisClient   *redis.Client
	KafkaProducer kafka.Producer
	KafkaConsumer kafka.Consumer
	Registry      *subscription.Registry
	Hub           *stream.Hub
	RiskService   services.RiskService
	HealthServer  *grpc.HealthServer
}

// InitializeDependencies инициализирует все зависимости; Kafka подключается только если включена
func InitializeDependencies(cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Инициализация SQLite
	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	deps.StorageConn = storageConn
	deps.StorageRepo = sqlite.NewRepository(storageConn)

	// Инициализация Redis
	log.Info().Msg("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.RedisClient = redisClient
	log.Info().Msg("Redis connection established")

	if err := redisClient.InitializeBlacklists(); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize blacklists")
	} else {
		log.Info().Msg("Redis blacklists initialized")
	}

	if cfg.Kafka.Enabled {
		log.Info().Msg("Connecting to Kafka...")
		producer, err := kafka.NewProducer(cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.KafkaProducer = producer
	}

	// Рассылка снимков
	deps.Registry = subscription.NewRegistry(deps.StorageRepo)
	snapshots := services.NewSnapshotReader(redisClient, deps.StorageRepo, log)
	deps.Hub = stream.NewHub(deps.Registry, snapshots, streamConfig(cfg), log)

	// Анализ
	a := cfg.Analysis
	scorer := fraud.NewHeuristicScorer(redisClient, a.LargeDebitThreshold)
	rules := categorizer.Default()
	deps.RiskService = services.NewRiskService(services.Options{
		Repository:  deps.StorageRepo,
		Cache:       redisClient,
		Producer:    deps.KafkaProducer,
		Publisher:   deps.Hub,
		Facets:      services.NewFacetProvider(redisClient, scorer, underwriting.NewAnalyzer(rules), log),
		Categorizer: rules,
		Detector: trends.NewDetector(trends.Config{
			AnomalyMultiplier: a.AnomalyMultiplier,
			AnomalyFloor:      a.AnomalyFloor,
			MinHistory:        a.MinHistory,
			TrendThreshold:    a.TrendThreshold,
		}),
		Aggregator: risk.NewAggregator(risk.Weights{
			Fraud:      a.FraudWeight,
			Behavior:   a.BehaviorWeight,
			Obligation: a.ObligationWeight,
		}),
		Logger: log,
	})

	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(cfg, analysisHandler(deps.RiskService, log))
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.KafkaConsumer = consumer
		log.Info().Msg("Kafka consumer connected successfully")
	}

	deps.HealthServer = grpc.NewHealthServer()

	return deps, nil
}

func streamConfig(cfg *config.Config) stream.Config {
	return stream.Config{
		QueueSize:      cfg.Stream.QueueSize,
		WriteTimeout:   cfg.Stream.WriteTimeout,
		PongWait:       cfg.Stream.PongWait,
		PingPeriod:     cfg.Stream.PingPeriod,
		MaxMessageSize: cfg.Stream.MaxMessageSize,
		AllowedOrigins: cfg.Stream.AllowedOrigins,
	}
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	var errs []error
	if d.KafkaConsumer != nil {
		errs = append(errs, d.KafkaConsumer.Close())
	}
	if d.KafkaProducer != nil {
		errs = append(errs, d.KafkaProducer.Close())
	}
	if d.RedisClient != nil {
		errs = append(errs, d.RedisClient.Close())
	}
	if d.StorageConn != nil {
		errs = append(errs, d.StorageConn.Close())
	}
	return errors.Join(errs...)
}
