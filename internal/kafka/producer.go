package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerConfig настройки синхронного продюсера
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	// Снимки одного задания попадают в одну партицию
	config.Producer.Partitioner = sarama.NewHashPartitioner
	return config
}

func NewProducer(cfg *config.Config) (Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer created successfully")
	return NewProducerWithClient(producer, cfg.Kafka.SnapshotTopic), nil
}

// NewProducerWithClient оборачивает готовый sarama.SyncProducer
func NewProducerWithClient(producer sarama.SyncProducer, topic string) Producer {
	return &ProducerImpl{
		producer: producer,
		topic:    topic,
	}
}

func (p *ProducerImpl) SendSnapshotEvent(event *models.SnapshotEvent) error {
	if event == nil || event.Data == nil {
		return fmt.Errorf("snapshot event has no data")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.Data.JobID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("job_id", event.Data.JobID).
		Msg("Snapshot event sent")
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
