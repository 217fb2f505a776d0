package repository

import "github.com/diillson/momcarebot/internal/domain/entity"

// EventLogRepository appends job events to the flat event log.
type EventLogRepository interface {
	Append(event entity.Event) error
}
