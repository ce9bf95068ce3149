package seeding

import "time"

type EventType int

const (
	EventGenerated EventType = iota + 1
	EventFailed
	EventDone
)

func (e EventType) String() string {
	switch e {
	case EventGenerated:
		return "Generated"
	case EventFailed:
		return "Failed"
	case EventDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Event is published by a Seeder while it runs.
type Event struct {
	Type EventType
	// Seed is set for EventGenerated.
	Seed *Seed
	// Index is the seed index of an EventFailed.
	Index int
	// Err is set for EventFailed, and for EventDone when the run aborted.
	Err       error
	CreatedAt time.Time
}
