package analytics

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tweenmart/storefront-backend/pkg/enums"
)

// Envelope wraps an analytics payload with the routing metadata the worker
// needs to dedupe and forward it.
type Envelope struct {
	EventID    string                   `json:"event_id"`
	EventType  enums.AnalyticsEventType `json:"event_type"`
	SessionID  string                   `json:"session_id,omitempty"`
	OccurredAt time.Time                `json:"occurred_at"`
	Payload    json.RawMessage          `json:"payload"`
}

// NewEnvelope stamps a payload with a fresh event ID and the current time.
func NewEnvelope(eventType enums.AnalyticsEventType, sessionID string, payload any) (Envelope, error) {
	if !eventType.IsValid() {
		return Envelope{}, fmt.Errorf("unknown analytics event type %q", eventType)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		SessionID:  strings.TrimSpace(sessionID),
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

// Marshal renders the envelope for the wire.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEnvelope parses a wire envelope and validates its identity fields.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode analytics envelope: %w", err)
	}
	if strings.TrimSpace(envelope.EventID) == "" {
		return nil, fmt.Errorf("event_id missing")
	}
	if !envelope.EventType.IsValid() {
		return nil, fmt.Errorf("unknown analytics event type %q", envelope.EventType)
	}
	return &envelope, nil
}
