package entity

import "time"

// EventStatus is the outcome recorded for a job step.
type EventStatus string

const (
	StatusStarted EventStatus = "STARTED"
	StatusSent    EventStatus = "SENT"
	StatusError   EventStatus = "ERROR"
	StatusDone    EventStatus = "DONE"
)

// Event is one line of the job event log.
type Event struct {
	Timestamp time.Time
	Job       string
	Status    EventStatus
	Message   string
	Extra     string
}
