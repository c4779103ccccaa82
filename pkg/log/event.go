package log

import (
	"time"

	"github.com/mikedotalmond/parameters/pkg/mapping"
)

// Event is one journal entry.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the recorder that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Sequence numbers events within a session, starting at 1.
	Sequence uint64 `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Bank is the name of the bank the parameter belongs to.
	Bank string `cbor:"5,keyasint,omitempty"`

	// Change is set for CategoryChange events.
	Change *ChangeEvent `cbor:"6,keyasint,omitempty"`

	// Session is set for CategorySession events.
	Session *SessionEvent `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryChange is an accepted parameter change.
	CategoryChange Category = 0

	// CategorySession marks the start or end of a recording session.
	CategorySession Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryChange:
		return "CHANGE"
	case CategorySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// ChangeEvent captures the state of a parameter after a change.
type ChangeEvent struct {
	// Parameter is the parameter name.
	Parameter string `cbor:"1,keyasint"`

	// Kind is the scalar kind of the real value.
	Kind mapping.Kind `cbor:"2,keyasint"`

	// Law is the interpolation law.
	Law mapping.Law `cbor:"3,keyasint"`

	// Normalised is the new normalised value.
	Normalised float64 `cbor:"4,keyasint"`

	// Value is the new real value as text.
	Value string `cbor:"5,keyasint"`

	// Unit is the unit of the real value.
	Unit string `cbor:"6,keyasint,omitempty"`
}

// SessionAction is what happened to a recording session.
type SessionAction uint8

const (
	// SessionStart is written when a recorder attaches to a bank.
	SessionStart SessionAction = 0

	// SessionStop is written when a recorder detaches.
	SessionStop SessionAction = 1
)

// String returns the action name.
func (a SessionAction) String() string {
	switch a {
	case SessionStart:
		return "START"
	case SessionStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// SessionEvent marks a session boundary.
type SessionEvent struct {
	// Action is START or STOP.
	Action SessionAction `cbor:"1,keyasint"`

	// Parameters is the number of parameters in the bank.
	Parameters int `cbor:"2,keyasint"`
}
