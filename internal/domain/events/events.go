// Package events names the notifications emitted after product mutations.
package events

import "encoding/json"

const (
	ProductCreated = "productCreated"
	ProductUpdated = "productUpdated"
	ProductDeleted = "productDeleted"
)

// Event is delivered as-is to every subscriber. Payload must marshal to JSON.
type Event struct {
	Name    string
	Payload any
}

// DeletedPayload is the body of a ProductDeleted event.
type DeletedPayload struct {
	Id uint `json:"id"`
}

// Message is the wire form shared by every transport.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Encode renders event as a JSON Message.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(Message{Event: event.Name, Data: event.Payload})
}
