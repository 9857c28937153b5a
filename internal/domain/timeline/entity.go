package timeline

import (
	"time"
)

// EventType is the closed set of punch event kinds. Anything else is
// rejected at the parsing boundary, never deeper.
type EventType string

const (
	EventPunchIn    EventType = "Punch In"
	EventPunchOut   EventType = "Punch Out"
	EventBreakStart EventType = "Break Start"
	EventResumeWork EventType = "Resume Work"
)

var EventTypeValues = []string{
	string(EventPunchIn),
	string(EventPunchOut),
	string(EventBreakStart),
	string(EventResumeWork),
}

// ParseEventType validates a raw event type string.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventPunchIn, EventPunchOut, EventBreakStart, EventResumeWork:
		return EventType(s), nil
	}
	return "", ErrUnknownEventType
}

// Event is one row of the append-only punch log. Day is the attendance day
// bucket chosen by the night-shift mapper at append time; it is never
// recomputed when shift configuration later changes.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Day        time.Time
	Type       EventType
	Timestamp  time.Time
	CreatedAt  time.Time
}

// Session is a reconstructed bounded interval. End nil means the session is
// still open. Sessions are derived; the raw timeline stays authoritative.
type Session struct {
	Start           time.Time
	End             *time.Time
	DurationSeconds int64
}

// Reconstruction is the deterministic output of replaying one day bucket.
type Reconstruction struct {
	WorkSessions  []Session
	BreakSessions []Session
	WorkSeconds   int64
	BreakSeconds  int64
}
