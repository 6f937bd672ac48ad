package watcher

import "time"

// EventType classifies a settled change.
type EventType int

const (
	EventAdded EventType = iota
	EventModified
	EventRemoved
)

var eventNames = [...]string{
	EventAdded:    "added",
	EventModified: "modified",
	EventRemoved:  "removed",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// Event is emitted once a file has settled. Size and ModTime are zero for
// EventRemoved.
type Event struct {
	Type    EventType
	Path    string
	Size    int64
	ModTime time.Time
}
