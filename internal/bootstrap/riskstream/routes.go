package riskstream

import (
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/api/rest"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SetupRoutes настраивает маршруты risk stream service
func SetupRoutes(deps *Dependencies) *gin.Engine {
	authenticator := auth.NewSessionAuthenticator(deps.RedisClient)
	handlers := rest.NewHandlers(deps.RiskService)

	return rest.SetupRouter(handlers, authenticator, deps.Hub.HandleWebSocket(authenticator),
		deps.Hub.Stats,
		func() map[string]interface{} {
			stats, err := deps.RiskService.RiskStats()
			if err != nil {
				log.Warn().Err(err).Msg("Failed to get risk stats")
				return nil
			}
			return map[string]interface{}{"risk_levels": stats}
		},
	)
}
