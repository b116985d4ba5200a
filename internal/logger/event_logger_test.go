package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventLogger(t *testing.T) {
	logger := NewEventLogger(100)
	require.NotNil(t, logger)
	assert.Equal(t, 100, logger.maxSize)
	assert.NotNil(t, logger.events)
	assert.Equal(t, 0, len(logger.events))
}

func TestEventLogger_LogEvent(t *testing.T) {
	logger := NewEventLogger(100)

	data := map[string]interface{}{
		"job_id": "JOB-001",
		"count":  12,
	}

	logger.LogEvent(EventTransactionsIngested, "risk-stream-service", "sqlite", data)

	assert.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, EventTransactionsIngested, event.Type)
	assert.Equal(t, "risk-stream-service", event.Service)
	assert.Equal(t, "sqlite", event.Component)
	assert.Equal(t, data, event.Data)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventLogger_LogEvent_MaxSize(t *testing.T) {
	logger := NewEventLogger(3)

	// Добавляем больше событий, чем maxSize
	for i := 0; i < 5; i++ {
		logger.LogEvent(EventSnapshotPublished, "test-service", "websocket", map[string]interface{}{"index": i})
	}

	// Должны остаться только последние 3 события
	assert.Len(t, logger.events, 3)
	assert.Equal(t, 2, logger.events[0].Data["index"])
	assert.Equal(t, 3, logger.events[1].Data["index"])
	assert.Equal(t, 4, logger.events[2].Data["index"])
}

func TestEventLogger_GetEvents(t *testing.T) {
	logger := NewEventLogger(100)

	for i := 0; i < 10; i++ {
		logger.LogEvent(EventAnalysisCompleted, "test-service", "analysis", map[string]interface{}{"index": i})
	}

	events := logger.GetEvents(0)
	assert.Len(t, events, 10)

	events = logger.GetEvents(5)
	assert.Len(t, events, 5)

	// Возвращаются последние события
	assert.Equal(t, 5, events[0].Data["index"])
	assert.Equal(t, 9, events[4].Data["index"])

	assert.Len(t, logger.GetEvents(50), 10)
}

func TestEventLogger_GetJobEvents(t *testing.T) {
	logger := NewEventLogger(100)

	logger.LogEvent(EventAnalysisStarted, "svc", "analysis", map[string]interface{}{"job_id": "J1", "index": 0})
	logger.LogEvent(EventAnalysisStarted, "svc", "analysis", map[string]interface{}{"job_id": "J2", "index": 1})
	logger.LogEvent(EventAnalysisCompleted, "svc", "analysis", map[string]interface{}{"job_id": "J1", "index": 2})
	logger.LogEvent(EventSnapshotPublished, "svc", "websocket", map[string]interface{}{"job_id": "J1", "index": 3})
	logger.LogEvent(EventConnectionOpened, "svc", "websocket", nil)

	events := logger.GetJobEvents("J1", 0)
	require.Len(t, events, 3)
	assert.Equal(t, 0, events[0].Data["index"])
	assert.Equal(t, 3, events[2].Data["index"])

	events = logger.GetJobEvents("J1", 2)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Data["index"])
	assert.Equal(t, 3, events[1].Data["index"])

	assert.Empty(t, logger.GetJobEvents("J3", 0))
}

func TestEventLogger_GetStats(t *testing.T) {
	logger := NewEventLogger(100)

	logger.LogEvent(EventConnectionOpened, "service1", "websocket", map[string]interface{}{})
	logger.LogEvent(EventSnapshotCached, "service1", "redis", map[string]interface{}{})
	logger.LogEvent(EventConnectionOpened, "service2", "websocket", map[string]interface{}{})

	stats := logger.GetStats()
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats["total_events"])

	components, ok := stats["components"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, components["websocket"])
	assert.Equal(t, 1, components["redis"])

	services, ok := stats["services"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, services["service1"])
	assert.Equal(t, 1, services["service2"])

	eventTypes, ok := stats["event_types"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, eventTypes[string(EventConnectionOpened)])
	assert.Equal(t, 1, eventTypes[string(EventSnapshotCached)])
}

func TestLogEvent_Global(t *testing.T) {
	LogEvent(EventSubscriptionRejected, "test-service", "websocket", map[string]interface{}{"job_id": "J-GLOBAL"})

	events := GetEvents(1)
	require.Len(t, events, 1)
	assert.Equal(t, EventSubscriptionRejected, events[0].Type)
	assert.Equal(t, "test-service", events[0].Service)

	jobEvents := GetJobEvents("J-GLOBAL", 1)
	require.Len(t, jobEvents, 1)
	assert.Equal(t, events[0].ID, jobEvents[0].ID)

	stats := GetStats()
	assert.Contains(t, stats, "total_events")
	assert.Contains(t, stats, "event_types")
}

func TestEvent_MarshalJSON(t *testing.T) {
	event := Event{
		ID:        "test-id",
		Type:      EventDeliveryDropped,
		Service:   "test-service",
		Component: "websocket",
		Timestamp: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Data:      map[string]interface{}{"key": "value"},
	}

	jsonData, err := event.MarshalJSON()
	require.NoError(t, err)

	// Timestamp в формате RFC3339
	assert.Contains(t, string(jsonData), "2024-01-15T14:30:00Z")
	assert.Contains(t, string(jsonData), `"type":"delivery_dropped"`)
}

func TestEventLogger_ConcurrentAccess(t *testing.T) {
	logger := NewEventLogger(1000)

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(index int) {
			for j := 0; j < 10; j++ {
				logger.LogEvent(EventDeliveryFailed, "test", "websocket", map[string]interface{}{
					"goroutine": index,
					"event":     j,
				})
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Len(t, logger.GetEvents(0), 100)
}
