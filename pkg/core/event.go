package core

import "fmt"

// EventType represents the type of change observed in a content store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in a content root.
type Event struct {
	Type      EventType
	Path      string // slash separated, relative to the watched root
	Timestamp int64  // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
