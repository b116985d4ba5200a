package riskstream

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/grpc"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"

	_ "github.com/BitmAura/Finscore-Analyzer-sub003/docs" // Swagger docs
)

const shutdownTimeout = 10 * time.Second

// StartRiskStreamService запускает сервис анализа и рассылки снимков риска
func StartRiskStreamService() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.WithLevel(log, cfg.LogLevel).With().Str("service", "risk-stream-service").Logger()

	// Инициализация зависимостей
	deps, err := InitializeDependencies(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	if err := seedDemoSession(cfg, deps.RedisClient, log); err != nil {
		log.Warn().Err(err).Msg("Failed to create demo session")
	}

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	defer cancel()

	// Запуск Kafka consumer в отдельной горутине
	consumerDone := make(chan struct{})
	if deps.KafkaConsumer != nil {
		go func() {
			defer close(consumerDone)
			log.Info().Msg("Starting Kafka consumer...")
			if err := deps.KafkaConsumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Kafka consumer stopped")
			}
		}()
	} else {
		close(consumerDone)
	}

	// Запуск gRPC сервера
	go func() {
		if err := grpc.StartGRPCServer(cfg, deps.HealthServer); err != nil {
			log.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	// Запуск HTTP сервера
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: SetupRoutes(deps),
	}

	go func() {
		log.Info().Int("port", cfg.Server.HTTPPort).Msg("Risk Stream Service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	deps.HealthServer.SetServing(true)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down services...")
	deps.HealthServer.SetServing(false)
	cancel()
	<-consumerDone

	// Закрываем постоянные соединения до остановки HTTP сервера
	deps.Hub.Close()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	deps.HealthServer.Stop()

	log.Info().Msg("Services exited")
}
