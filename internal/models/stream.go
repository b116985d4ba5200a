package models

const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeRiskUpdate  = "risk_update"
)

// InboundMessage управляющее сообщение от клиента
type InboundMessage struct {
	Type  string `json:"type"`
	JobID string `json:"jobId"`
}

// OutboundMessage сообщение сервера клиенту
type OutboundMessage struct {
	Type string        `json:"type"`
	Data *RiskSnapshot `json:"data,omitempty"`
}

// NewRiskUpdate оборачивает снимок в сообщение risk_update
func NewRiskUpdate(snapshot *RiskSnapshot) *OutboundMessage {
	return &OutboundMessage{Type: MessageTypeRiskUpdate, Data: snapshot}
}
