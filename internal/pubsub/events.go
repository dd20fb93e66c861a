// Package pubsub provides the generic broker behind the log tail and the
// preference hub.
package pubsub

import "time"

// EventType tags what kind of payload an event carries.
type EventType string

const (
	LogEvent    EventType = "log"
	ChangeEvent EventType = "change"
)

// Event is one published payload. Seq increases by one per Publish on a
// broker, so a subscriber can tell when it dropped events.
type Event[T any] struct {
	Type      EventType
	Seq       uint64
	Payload   T
	Timestamp time.Time
}
