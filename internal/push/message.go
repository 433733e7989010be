package push

import "encoding/json"

const (
	TypeNotify        = "notify"
	TypeLivenessCheck = "liveness_probe"
	TypeLivenessAck   = "liveness_ack"
	TypeError         = "error"
)

// Message is one outbound frame.
type Message struct {
	Type       string          `json:"type"`
	Event      interface{}     `json:"event,omitempty"`
	ServerTime int64           `json:"serverTime,omitempty"`
	Received   json.RawMessage `json:"received,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// NotifyMessage wraps an enriched event for unsolicited delivery.
func NotifyMessage(event interface{}) Message {
	return Message{Type: TypeNotify, Event: event}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
