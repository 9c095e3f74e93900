package events

import "flightboard-service/internal/models/dtos"

type EventType string

// Event type names match the wire contract the board UI subscribes to.
const (
	EventFlightAdded    EventType = "FlightAdded"
	EventFlightDeleted  EventType = "FlightDeleted"
	EventFlightsUpdated EventType = "FlightsUpdated"
)

// Event is an ephemeral broadcast message. It has no identity beyond
// delivery order to a given observer and is lost if nobody is attached
// when it is published.
type Event struct {
	Type     EventType            `json:"type"`
	Flight   *dtos.FlightResponse `json:"flight,omitempty"`
	FlightID *uint                `json:"flightId,omitempty"`
}

// FlightAdded builds the event published after a flight is persisted.
func FlightAdded(flight dtos.FlightResponse) Event {
	return Event{Type: EventFlightAdded, Flight: &flight}
}

// FlightDeleted builds the event published after a flight is removed.
func FlightDeleted(id uint) Event {
	return Event{Type: EventFlightDeleted, FlightID: &id}
}

// Heartbeat builds the periodic payload-free refresh prompt.
func Heartbeat() Event {
	return Event{Type: EventFlightsUpdated}
}
