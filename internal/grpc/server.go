package grpc

import (
	"fmt"
	"net"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/config"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName имя сервиса в протоколе проверки состояния
const ServiceName = "finscore.RiskStream"

// HealthServer gRPC сервер с протоколом проверки состояния.
// Состояние SERVING выставляется, пока работает рассылка снимков.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
}

func NewHealthServer() *HealthServer {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)

	hs := &HealthServer{server: s, health: h}
	hs.SetServing(false)
	return hs
}

// SetServing переключает состояние сервиса
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve обслуживает соединения до остановки сервера
func (s *HealthServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop переводит сервис в NOT_SERVING и дожидается завершения запросов
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// StartGRPCServer запускает gRPC сервер
func StartGRPCServer(cfg *config.Config, server *HealthServer) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Info().Int("port", cfg.Server.GRPCPort).Msg("gRPC server listening")
	if err := server.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
