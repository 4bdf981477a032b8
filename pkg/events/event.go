package events

import "time"

// Event is the contract every bus event satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LEAD_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used by publishers that have no
// event-specific behavior.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published by the funnel.
const (
	TypeLeadCreated    = "LEAD_CREATED"
	TypeLeadExported   = "LEAD_EXPORTED"
	TypeManagerRequest = "MANAGER_REQUEST"
	TypeSessionReset   = "SESSION_RESET"
)

// NewLeadCreated builds the event announced when a funnel produces a lead.
func NewLeadCreated(tenantSlug, leadId, kind string) BaseEvent {
	return BaseEvent{
		Type: TypeLeadCreated,
		Data: map[string]interface{}{
			"tenant":  tenantSlug,
			"lead_id": leadId,
			"kind":    kind,
		},
		OccurredAt: time.Now(),
	}
}
