package models

import (
	"time"
)

const (
	EventTypeAnalysisRequested = "analysis_requested"
	EventTypeSnapshotProduced  = "risk_snapshot_produced"
)

// AnalysisRequestedEvent событие Kafka с запросом на пересчет задания
type AnalysisRequestedEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	Data      AnalysisRequestData `json:"data"`
}

// AnalysisRequestData данные запроса на пересчет
type AnalysisRequestData struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
}

// SnapshotEvent событие Kafka с новым снимком риска
type SnapshotEvent struct {
	EventID   string        `json:"event_id"`
	EventType string        `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	Data      *RiskSnapshot `json:"data"`
}
