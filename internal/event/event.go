// Package event provides domain events and a synchronous in-process dispatcher.
package event

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Name identifies an event kind. Handlers are matched by exact string equality, so
// the values below are a wire contract and must never change.
type Name string

const (
	ProductCreated         Name = "ProductCreatedEvent"
	CustomerCreated        Name = "CustomerCreatedEvent"
	CustomerAddressChanged Name = "CustomerAddressChangedEvent"
)

// ErrUnexpectedEvent is returned by handlers notified with an event they cannot handle
var ErrUnexpectedEvent = errors.New("unexpected event")

// ErrNilEvent is returned by Notify when called without an event
var ErrNilEvent = errors.New("nil event")

// Event is the interface that all domain events implement.
type Event interface {
	EventID() uuid.UUID
	EventName() Name
	OccurredAt() time.Time
	Data() any
}

// Base carries the identity and timestamp shared by every event.
// Domain events embed it and provide EventName and Data themselves.
type Base struct {
	ID         uuid.UUID
	OccurredOn time.Time
}

func newBase() Base {
	return Base{ID: uuid.New(), OccurredOn: time.Now()}
}

func (b Base) EventID() uuid.UUID    { return b.ID }
func (b Base) OccurredAt() time.Time { return b.OccurredOn }
