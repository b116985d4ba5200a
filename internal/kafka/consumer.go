package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

const serviceName = "risk-stream-service"

type ConsumerImpl struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  AnalysisHandler
}

func NewConsumer(cfg *config.Config, handler AnalysisHandler) (Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Version = sarama.V2_8_0_0

	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	log.Info().Str("topic", cfg.Kafka.AnalysisTopic).Msg("Kafka consumer created successfully")
	return &ConsumerImpl{
		consumer: consumer,
		topic:    cfg.Kafka.AnalysisTopic,
		handler:  handler,
	}, nil
}

func (c *ConsumerImpl) Start(ctx context.Context) error {
	topics := []string{c.topic}
	groupHandler := &consumerGroupHandler{handler: c.handler}

	wg := &sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumer.Consume(ctx, topics, groupHandler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				log.Error().Err(err).Msg("Error from consumer")
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for {
			select {
			case err, ok := <-c.consumer.Errors():
				if !ok {
					return
				}
				log.Error().Err(err).Msg("Consumer error")
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Consumer context cancelled, shutting down...")
	wg.Wait()
	return nil
}

func (c *ConsumerImpl) Close() error {
	return c.consumer.Close()
}

type consumerGroupHandler struct {
	handler AnalysisHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			h.process(session.Context(), message)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// process разбирает и обрабатывает одно сообщение.
// Ошибки только логируются: сообщение все равно помечается прочитанным.
func (h *consumerGroupHandler) process(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := decodeAnalysisRequest(message.Value)
	if err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("Skipping malformed analysis request")
		return err
	}

	logger.LogEvent(logger.EventKafkaReceived, serviceName, "kafka", map[string]interface{}{
		"event_id": event.EventID,
		"job_id":   event.Data.JobID,
		"reason":   event.Data.Reason,
	})

	if err := h.handler(ctx, event); err != nil {
		log.Error().Err(err).Str("job_id", event.Data.JobID).Msg("Error handling analysis request")
		return err
	}
	return nil
}

func decodeAnalysisRequest(data []byte) (*models.AnalysisRequestedEvent, error) {
	var event models.AnalysisRequestedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Data.JobID == "" {
		return nil, fmt.Errorf("analysis request %q has no job_id", event.EventID)
	}
	return &event, nil
}
