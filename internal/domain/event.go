package domain

import "time"

// EventType names a business event published to live subscribers
type EventType string

const (
	EventOrderCreated     EventType = "order.created"
	EventOrderCompleted   EventType = "order.completed"
	EventOrderCancelled   EventType = "order.cancelled"
	EventStockReceived    EventType = "stock.received"
	EventStockLow         EventType = "stock.low"
	EventReturnRegistered EventType = "return.registered"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	switch t {
	case EventOrderCreated, EventOrderCompleted, EventOrderCancelled,
		EventStockReceived, EventStockLow, EventReturnRegistered:
		return true
	}
	return false
}

// Event is a message delivered over the event stream
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
