package jobs

import "time"

// EventType distinguishes log lines from terminal outcomes.
type EventType int

const (
	EventLog EventType = iota
	EventSucceeded
	EventFailed
)

func (t EventType) String() string {
	switch t {
	case EventLog:
		return "log"
	case EventSucceeded:
		return "succeeded"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends the job.
func (t EventType) Terminal() bool {
	return t == EventSucceeded || t == EventFailed
}

// Event is emitted by a running job. Line is set for EventLog, Output for
// EventSucceeded and Err for EventFailed.
type Event struct {
	JobID  string
	Kind   Kind
	Type   EventType
	Line   string
	Output string
	Err    error
	Time   time.Time
}

// Sink receives a job's events in order from the job's worker goroutine.
type Sink func(Event)
