package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTransactionsIngested    EventType = "transactions_ingested"
	EventTransactionsCategorized EventType = "transactions_categorized"
	EventCategoryCorrected       EventType = "category_corrected"
	EventTransactionsCleared     EventType = "transactions_cleared"
	EventKafkaSent               EventType = "kafka_sent"
	EventKafkaReceived           EventType = "kafka_received"
	EventAnalysisStarted         EventType = "analysis_started"
	EventAnalysisCompleted       EventType = "analysis_completed"
	EventSnapshotPersisted       EventType = "snapshot_persisted"
	EventSnapshotCached          EventType = "snapshot_cached"
	EventSnapshotPublished       EventType = "snapshot_published"
	EventConnectionOpened        EventType = "connection_opened"
	EventConnectionClosed        EventType = "connection_closed"
	EventSubscriptionAccepted    EventType = "subscription_accepted"
	EventSubscriptionRejected    EventType = "subscription_rejected"
	EventDeliveryDropped         EventType = "delivery_dropped"
	EventDeliveryFailed          EventType = "delivery_failed"
)

type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Service   string                 `json:"service"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Component string                 `json:"component"` // websocket, redis, sqlite, kafka и т.д.
}

// EventLogger журнал последних событий конвейера в памяти
type EventLogger struct {
	events  []Event
	mu      sync.RWMutex
	maxSize int
}

var globalLogger *EventLogger

func init() {
	globalLogger = NewEventLogger(1000) // Храним последние 1000 событий
}

func NewEventLogger(maxSize int) *EventLogger {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &EventLogger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
	}
}

func LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	globalLogger.LogEvent(eventType, service, component, data)
}

func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	el.mu.Lock()
	defer el.mu.Unlock()

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Service:   service,
		Component: component,
		Timestamp: time.Now(),
		Data:      data,
	}

	el.events = append(el.events, event)

	// Ограничиваем размер
	if len(el.events) > el.maxSize {
		el.events = el.events[len(el.events)-el.maxSize:]
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

// GetEvents возвращает последние limit событий; limit <= 0 - все
func (el *EventLogger) GetEvents(limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if limit <= 0 || limit > len(el.events) {
		limit = len(el.events)
	}

	result := make([]Event, limit)
	copy(result, el.events[len(el.events)-limit:])
	return result
}

func GetJobEvents(jobID string, limit int) []Event {
	return globalLogger.GetJobEvents(jobID, limit)
}

// GetJobEvents возвращает последние события, относящиеся к заданию
func (el *EventLogger) GetJobEvents(jobID string, limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []Event
	for i := len(el.events) - 1; i >= 0; i-- {
		if id, ok := el.events[i].Data["job_id"].(string); !ok || id != jobID {
			continue
		}
		result = append(result, el.events[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}

	// Восстанавливаем хронологический порядок
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

func GetStats() map[string]interface{} {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]interface{} {
	el.mu.RLock()
	defer el.mu.RUnlock()

	stats := make(map[string]interface{})
	componentStats := make(map[string]int)
	serviceStats := make(map[string]int)
	typeStats := make(map[string]int)

	for _, event := range el.events {
		componentStats[event.Component]++
		serviceStats[event.Service]++
		typeStats[string(event.Type)]++
	}

	stats["total_events"] = len(el.events)
	stats["components"] = componentStats
	stats["services"] = serviceStats
	stats["event_types"] = typeStats

	return stats
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
