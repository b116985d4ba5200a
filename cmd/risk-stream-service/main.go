package main

import "github.com/BitmAura/Finscore-Analyzer-sub003/internal/bootstrap/riskstream"

// @title Finscore Risk Stream API
// @version 1.0
// @description Анализ банковских выписок и рассылка снимков риска в реальном времени
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() { riskstream.StartRiskStreamService() }
