package subscription

import (
	"fmt"
	"time"
)

// Lifecycle event types.
const (
	EventTypeCreated     = "created"
	EventTypeUpdated     = "updated"
	EventTypePlanChanged = "plan_changed"
	EventTypeCanceled    = "canceled"
	EventTypeReactivated = "reactivated"
)

// Event is an immutable audit record of a subscription lifecycle transition.
// Events are append-only and written in the same transaction as the state
// change they describe.
type Event struct {
	id             uint
	subscriptionID uint
	eventType      string
	description    string
	metadata       map[string]interface{}
	createdAt      time.Time
}

// NewEvent creates an audit event for a subscription.
func NewEvent(subscriptionID uint, eventType, description string, metadata map[string]interface{}) (*Event, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	return &Event{
		subscriptionID: subscriptionID,
		eventType:      eventType,
		description:    description,
		metadata:       metadata,
		createdAt:      time.Now(),
	}, nil
}

// ReconstructEvent reconstructs an event from persistence.
func ReconstructEvent(
	id, subscriptionID uint,
	eventType, description string,
	metadata map[string]interface{},
	createdAt time.Time,
) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}

	return &Event{
		id:             id,
		subscriptionID: subscriptionID,
		eventType:      eventType,
		description:    description,
		metadata:       metadata,
		createdAt:      createdAt,
	}, nil
}

// ID returns the event ID
func (e *Event) ID() uint {
	return e.id
}

// SubscriptionID returns the owning subscription ID
func (e *Event) SubscriptionID() uint {
	return e.subscriptionID
}

// EventType returns the event type
func (e *Event) EventType() string {
	return e.eventType
}

// Description returns the human-readable event description
func (e *Event) Description() string {
	return e.description
}

// Metadata returns the event metadata blob
func (e *Event) Metadata() map[string]interface{} {
	return e.metadata
}

// CreatedAt returns when the event was recorded
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// SetID sets the event ID (only for persistence layer use)
func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}
