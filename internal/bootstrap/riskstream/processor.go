package riskstream

import (
	"context"
	"errors"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/kafka"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/services"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"

	"github.com/rs/zerolog"
)

// SessionCreator создает сессии пользователей
type SessionCreator interface {
	CreateSession(token, userID string, ttl time.Duration) error
}

// analysisHandler пересчитывает задание по запросу из Kafka.
// Удаленное задание не считается ошибкой, чтобы не блокировать остальные сообщения.
func analysisHandler(service services.RiskService, log zerolog.Logger) kafka.AnalysisHandler {
	return func(ctx context.Context, event *models.AnalysisRequestedEvent) error {
		jobID := event.Data.JobID

		snapshot, err := service.Reanalyze(ctx, jobID)
		if errors.Is(err, storage.ErrJobNotFound) {
			log.Warn().Str("job_id", jobID).Msg("Analysis requested for unknown job")
			return nil
		}
		if err != nil {
			return err
		}

		log.Info().
			Str("job_id", jobID).
			Str("reason", event.Data.Reason).
			Float64("risk_score", snapshot.OverallRiskScore).
			Str("risk_level", snapshot.RiskLevel).
			Msg("Job reanalyzed")
		return nil
	}
}

// seedDemoSession создает сессию из настроек, если токен задан
func seedDemoSession(cfg *config.Config, sessions SessionCreator, log zerolog.Logger) error {
	if cfg.Demo.SessionToken == "" {
		return nil
	}
	if err := sessions.CreateSession(cfg.Demo.SessionToken, cfg.Demo.UserID, cfg.Redis.SessionTTL); err != nil {
		return err
	}
	log.Info().Str("user_id", cfg.Demo.UserID).Msg("Demo session created")
	return nil
}
