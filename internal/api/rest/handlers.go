package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/auth"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/generator"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/logger"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/services"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	service   services.RiskService
	generator *generator.StatementGenerator
}

// Создает новые обработчики REST API
func NewHandlers(service services.RiskService) *Handlers {
	return &Handlers{
		service:   service,
		generator: generator.NewStatementGenerator(),
	}
}

// RequireJobOwner пропускает запрос только владельца задания из пути
func (h *Handlers) RequireJobOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("job_id")

		owner, err := h.service.OwnerOf(jobID)
		if err != nil {
			respondError(c, err, "Failed to check job owner")
			c.Abort()
			return
		}
		if owner != auth.UserID(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

// CreateJob создает задание на анализ
// @Summary Создать задание
// @Description Создает задание на анализ выписок текущего пользователя
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param job body models.CreateJobRequest true "Параметры задания"
// @Success 201 {object} models.AnalysisJob "Задание создано"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /jobs [post]
func (h *Handlers) CreateJob(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.service.CreateJob(auth.UserID(c), &req)
	if err != nil {
		respondError(c, err, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, job)
}

// IngestTransactions принимает строки выписки и пересчитывает риск
// @Summary Загрузить операции
// @Description Сохраняет операции задания, категоризирует их и синхронно пересчитывает снимок риска. Снимок также рассылается подписчикам задания.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Param transactions body models.IngestRequest true "Операции"
// @Success 200 {object} models.RiskSnapshot "Новый снимок риска"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /jobs/{job_id}/transactions [post]
func (h *Handlers) IngestTransactions(c *gin.Context) {
	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.service.IngestTransactions(c.Request.Context(), c.Param("job_id"), req.Transactions)
	if err != nil {
		respondError(c, err, "Failed to ingest transactions")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetSnapshot возвращает последний снимок риска задания
// @Summary Последний снимок риска
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Success 200 {object} models.RiskSnapshot "Снимок риска"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /jobs/{job_id}/snapshot [get]
func (h *Handlers) GetSnapshot(c *gin.Context) {
	snapshot, err := h.service.LatestSnapshot(c.Param("job_id"))
	if err != nil {
		respondError(c, err, "Failed to get snapshot")
		return
	}

	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Snapshot not found"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// UpdateFacets сохраняет внешние показатели риска
// @Summary Обновить показатели риска
// @Description Сохраняет оценку мошенничества, банковского поведения и долговой нагрузки. Непереданные показатели не меняются. Все показатели ориентированы на риск.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Param facets body models.FacetScoresUpdate true "Показатели"
// @Success 200 {object} models.RiskSnapshot "Новый снимок риска"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Service Unavailable"
// @Router /jobs/{job_id}/facets [put]
func (h *Handlers) UpdateFacets(c *gin.Context) {
	var update models.FacetScoresUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.service.SaveFacetScores(c.Request.Context(), c.Param("job_id"), update)
	if err != nil {
		respondError(c, err, "Failed to save facet scores")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// CorrectCategory сохраняет ручную правку категории операции
// @Summary Исправить категорию операции
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Param transaction_id path string true "ID операции"
// @Param category body models.CategoryCorrectionRequest true "Категория"
// @Success 200 {object} models.RiskSnapshot "Новый снимок риска"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /jobs/{job_id}/transactions/{transaction_id}/category [patch]
func (h *Handlers) CorrectCategory(c *gin.Context) {
	var req models.CategoryCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.service.CorrectCategory(c.Request.Context(), c.Param("job_id"), c.Param("transaction_id"), req.Category)
	if err != nil {
		respondError(c, err, "Failed to correct category")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Reanalyze пересчитывает риск задания
// @Summary Пересчитать риск
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Success 200 {object} models.RiskSnapshot "Новый снимок риска"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /jobs/{job_id}/reanalyze [post]
func (h *Handlers) Reanalyze(c *gin.Context) {
	snapshot, err := h.service.Reanalyze(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err, "Failed to reanalyze job")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ClearTransactions удаляет выписку задания
// @Summary Очистить выписку
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Success 200 {object} models.RiskSnapshot "Снимок пустой выписки"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /jobs/{job_id}/transactions [delete]
func (h *Handlers) ClearTransactions(c *gin.Context) {
	snapshot, err := h.service.ClearTransactions(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err, "Failed to clear transactions")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// JobEvents возвращает журнал событий задания
// @Summary События задания
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Param limit query int false "Число событий (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "События"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /jobs/{job_id}/events [get]
func (h *Handlers) JobEvents(c *gin.Context) {
	events := logger.GetJobEvents(c.Param("job_id"), eventLimit(c))
	if events == nil {
		events = []logger.Event{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Categorize определяет категорию по описанию операции
// @Summary Категоризировать описание
// @Tags categorizer
// @Produce json
// @Param description query string true "Описание операции"
// @Success 200 {object} models.CategorizeResponse "Категория"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /categorize [get]
func (h *Handlers) Categorize(c *gin.Context) {
	description := strings.TrimSpace(c.Query("description"))
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	c.JSON(http.StatusOK, models.CategorizeResponse{
		Description: description,
		Category:    h.service.Categorize(description),
	})
}

// GenerateStatement генерирует демонстрационную выписку
// @Summary Сгенерировать выписку
// @Description Генерирует строки выписки для тестирования. Результат не сохраняется: его можно передать в POST /jobs/{job_id}/transactions.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "ID задания"
// @Param months query int false "Число месяцев (максимум 24)" default(3)
// @Param per_month query int false "Покупок в месяц (максимум 100)" default(12)
// @Param profile query string false "Профиль риска: low, medium, high" default(low)
// @Success 200 {object} models.IngestRequest "Сгенерированная выписка"
// @Router /jobs/{job_id}/transactions/generate [get]
func (h *Handlers) GenerateStatement(c *gin.Context) {
	months, _ := strconv.Atoi(c.Query("months"))
	perMonth, _ := strconv.Atoi(c.Query("per_month"))
	profile := c.DefaultQuery("profile", generator.ProfileLow)

	c.JSON(http.StatusOK, models.IngestRequest{
		Transactions: h.generator.GenerateStatement(months, perMonth, profile),
	})
}
