package rest

import (
	"net/http"
	"strconv"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/auth"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// StatsFunc дополняет ответ /api/v1/stats
type StatsFunc func() map[string]interface{}

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine, stats ...StatsFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Журнал событий сервиса; события задания отдаются только владельцу
	router.GET("/api/v1/events", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"events": logger.GetEvents(eventLimit(c))})
	})

	router.GET("/api/v1/stats", func(c *gin.Context) {
		result := logger.GetStats()
		for _, fn := range stats {
			for key, value := range fn() {
				result[key] = value
			}
		}
		c.JSON(http.StatusOK, result)
	})
}

// eventLimit разбирает параметр limit: от 1 до 500, по умолчанию 100
func eventLimit(c *gin.Context) int {
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 && parsed <= 500 {
		return parsed
	}
	return 100
}

// SetupRouter настраивает маршруты REST API и WebSocket
func SetupRouter(handlers *Handlers, authenticator auth.Authenticator, websocket gin.HandlerFunc, stats ...StatsFunc) *gin.Engine {
	router := gin.New()
	router.Use(CORSMiddleware(), gin.Logger(), gin.Recovery())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Постоянное соединение аутентифицируется при upgrade
	router.GET("/ws", websocket)

	api := router.Group("/api/v1")
	{
		api.GET("/categorize", handlers.Categorize)

		secured := api.Group("", auth.Middleware(authenticator))
		secured.POST("/jobs", handlers.CreateJob)

		jobs := secured.Group("/jobs/:job_id", handlers.RequireJobOwner())
		{
			jobs.GET("/snapshot", handlers.GetSnapshot)
			jobs.GET("/events", handlers.JobEvents)
			jobs.POST("/transactions", handlers.IngestTransactions)
			jobs.DELETE("/transactions", handlers.ClearTransactions)
			jobs.GET("/transactions/generate", handlers.GenerateStatement)
			jobs.PATCH("/transactions/:transaction_id/category", handlers.CorrectCategory)
			jobs.PUT("/facets", handlers.UpdateFacets)
			jobs.POST("/reanalyze", handlers.Reanalyze)
		}
	}

	// Общие endpoints (health, events, stats)
	SetupCommonEndpoints(router, stats...)

	return router
}
