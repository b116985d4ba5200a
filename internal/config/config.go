package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DB       DBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Stream   StreamConfig
	Demo     DemoConfig
	LogLevel string
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	SnapshotTTL time.Duration
	SessionTTL  time.Duration
}

type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	AnalysisTopic   string // запросы на пересчет
	SnapshotTopic   string // готовые снимки риска
	ConsumerGroupID string
}

type ServerConfig struct {
	HTTPPort int
	GRPCPort int
}

// AnalysisConfig параметры детектора и агрегатора
type AnalysisConfig struct {
	AnomalyMultiplier   float64
	AnomalyFloor        float64
	MinHistory          int
	TrendThreshold      float64
	LargeDebitThreshold float64
	FraudWeight         float64
	BehaviorWeight      float64
	ObligationWeight    float64
}

// StreamConfig параметры постоянных соединений
type StreamConfig struct {
	QueueSize      int
	WriteTimeout   time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

// DemoConfig сессия, создаваемая при запуске для локальной проверки
type DemoConfig struct {
	SessionToken string
	UserID       string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := fromKoanf(k)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromKoanf(k *koanf.Koanf) *Config {
	return &Config{
		DB: DBConfig{
			DBPath: getString(k, "DB_PATH", "./data/finscore.db"),
		},
		Redis: RedisConfig{
			Host:        getString(k, "REDIS_HOST", "localhost"),
			Port:        getString(k, "REDIS_PORT", "6379"),
			Password:    getString(k, "REDIS_PASSWORD", ""),
			SnapshotTTL: getDuration(k, "REDIS_SNAPSHOT_TTL", 24*time.Hour),
			SessionTTL:  getDuration(k, "REDIS_SESSION_TTL", 12*time.Hour),
		},
		Kafka: KafkaConfig{
			Enabled:         getBool(k, "KAFKA_ENABLED", false),
			Brokers:         splitList(getString(k, "KAFKA_BROKERS", "localhost:9092")),
			AnalysisTopic:   getString(k, "KAFKA_ANALYSIS_TOPIC", "finscore.analysis.requested"),
			SnapshotTopic:   getString(k, "KAFKA_SNAPSHOT_TOPIC", "finscore.risk.snapshots"),
			ConsumerGroupID: getString(k, "KAFKA_CONSUMER_GROUP", "risk-stream-group"),
		},
		Server: ServerConfig{
			HTTPPort: getInt(k, "HTTP_PORT", 8080),
			GRPCPort: getInt(k, "GRPC_PORT", 50051),
		},
		Analysis: AnalysisConfig{
			AnomalyMultiplier:   getFloat(k, "ANOMALY_MULTIPLIER", 3.0),
			AnomalyFloor:        getFloat(k, "ANOMALY_FLOOR", 1000),
			MinHistory:          getInt(k, "ANOMALY_MIN_HISTORY", 5),
			TrendThreshold:      getFloat(k, "TREND_THRESHOLD", 0),
			LargeDebitThreshold: getFloat(k, "LARGE_DEBIT_THRESHOLD", 5000),
			FraudWeight:         getFloat(k, "WEIGHT_FRAUD", 0.5),
			BehaviorWeight:      getFloat(k, "WEIGHT_BEHAVIOR", 0.3),
			ObligationWeight:    getFloat(k, "WEIGHT_OBLIGATION", 0.2),
		},
		Stream: StreamConfig{
			QueueSize:      getInt(k, "STREAM_QUEUE_SIZE", 4),
			WriteTimeout:   getDuration(k, "STREAM_WRITE_TIMEOUT", 10*time.Second),
			PongWait:       getDuration(k, "STREAM_PONG_WAIT", 60*time.Second),
			PingPeriod:     getDuration(k, "STREAM_PING_PERIOD", 54*time.Second),
			MaxMessageSize: int64(getInt(k, "STREAM_MAX_MESSAGE_SIZE", 4096)),
			AllowedOrigins: splitList(getString(k, "STREAM_ALLOWED_ORIGINS", "")),
		},
		Demo: DemoConfig{
			SessionToken: getString(k, "DEMO_SESSION_TOKEN", ""),
			UserID:       getString(k, "DEMO_USER_ID", "demo-user"),
		},
		LogLevel: getString(k, "LOG_LEVEL", "info"),
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Stream.QueueSize <= 0 {
		errs = append(errs, errors.New("STREAM_QUEUE_SIZE must be positive"))
	}
	if c.Stream.PingPeriod <= 0 || c.Stream.PingPeriod >= c.Stream.PongWait {
		errs = append(errs, errors.New("STREAM_PING_PERIOD must be positive and shorter than STREAM_PONG_WAIT"))
	}
	if c.Stream.WriteTimeout <= 0 {
		errs = append(errs, errors.New("STREAM_WRITE_TIMEOUT must be positive"))
	}
	if c.Stream.MaxMessageSize <= 0 {
		errs = append(errs, errors.New("STREAM_MAX_MESSAGE_SIZE must be positive"))
	}

	a := c.Analysis
	if a.FraudWeight < 0 || a.BehaviorWeight < 0 || a.ObligationWeight < 0 {
		errs = append(errs, errors.New("facet weights must not be negative"))
	}
	if a.FraudWeight+a.BehaviorWeight+a.ObligationWeight == 0 {
		errs = append(errs, errors.New("at least one facet weight must be positive"))
	}
	if a.AnomalyMultiplier <= 0 {
		errs = append(errs, errors.New("ANOMALY_MULTIPLIER must be positive"))
	}
	if a.AnomalyFloor < 0 {
		errs = append(errs, errors.New("ANOMALY_FLOOR must not be negative"))
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when Kafka is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func getString(k *koanf.Koanf, key, defaultValue string) string {
	if value := k.String(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(k *koanf.Koanf, key string, defaultValue int) int {
	if !k.Exists(key) || k.String(key) == "" {
		return defaultValue
	}
	return k.Int(key)
}

func getFloat(k *koanf.Koanf, key string, defaultValue float64) float64 {
	if !k.Exists(key) || k.String(key) == "" {
		return defaultValue
	}
	return k.Float64(key)
}

func getBool(k *koanf.Koanf, key string, defaultValue bool) bool {
	if !k.Exists(key) || k.String(key) == "" {
		return defaultValue
	}
	return k.Bool(key)
}

func getDuration(k *koanf.Koanf, key string, defaultValue time.Duration) time.Duration {
	if !k.Exists(key) || k.String(key) == "" {
		return defaultValue
	}
	return k.Duration(key)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
