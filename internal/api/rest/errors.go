package rest

import (
	"errors"
	"net/http"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/services"
	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError переводит ошибку сервиса в HTTP ответ
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, storage.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, services.ErrFacetStoreRequired):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Facet store is not available"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
