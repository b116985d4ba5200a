package redis

import (
	"time"

	"github.com/BitmAura/Finscore-Analyzer-sub003/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	// CacheSnapshot сохраняет последний снимок риска задания
	CacheSnapshot(snapshot *models.RiskSnapshot) error

	// GetCachedSnapshot получает последний снимок риска задания
	GetCachedSnapshot(jobID string) (*models.RiskSnapshot, error)

	// SaveFacetScores сохраняет внешние показатели риска задания
	SaveFacetScores(jobID string, update models.FacetScoresUpdate) error

	// GetFacetScores получает внешние показатели риска задания
	GetFacetScores(jobID string) (models.FacetScoresUpdate, error)

	// CreateSession создает сессию пользователя
	CreateSession(token, userID string, ttl time.Duration) error

	// ResolveSession определяет пользователя по токену сессии
	ResolveSession(token string) (string, error)

	// BlacklistedMerchants возвращает черный список мерчантов
	BlacklistedMerchants() ([]string, error)

	// AddMerchantToBlacklist добавляет мерчанта в черный список
	AddMerchantToBlacklist(merchant string) error

	// InitializeBlacklists инициализирует черные списки
	InitializeBlacklists() error

	// IncrementRiskStats увеличивает счетчик статистики рисков
	IncrementRiskStats(riskLevel string) error

	// GetRiskStats возвращает статистику рисков
	GetRiskStats() (map[string]int64, error)

	// ClearJobData очищает данные задания
	ClearJobData(jobID string) error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
