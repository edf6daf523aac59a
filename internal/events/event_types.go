package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDrinkCreated EventType = "drink_created"
	EventDrinkUpdated EventType = "drink_updated"
	EventDrinkDeleted EventType = "drink_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	DrinkID   int64       `json:"drink_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// DrinkChangedPayload payload for create and update events.
type DrinkChangedPayload struct {
	Title string `json:"title"`
}
