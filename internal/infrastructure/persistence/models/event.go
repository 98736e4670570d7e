package models

import (
	"time"

	"github.com/google/uuid"
)

// DomainEventModel is one row of the append-only event log
type DomainEventModel struct {
	Position      int64     `gorm:"primaryKey;autoIncrement"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_domain_events_event_id"`
	AggregateType string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_domain_events_stream,priority:1"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_domain_events_stream,priority:2"`
	Sequence      int64     `gorm:"not null;uniqueIndex:idx_domain_events_stream,priority:3"`
	EventType     string    `gorm:"type:varchar(128);not null"`
	SchemaVersion int       `gorm:"not null;default:1"`
	Payload       []byte    `gorm:"not null"`
	OccurredAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DomainEventModel) TableName() string {
	return "domain_events"
}
