package events

import (
	"time"

	"cathedral-bridge/domain/core/aggregates"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

const (
	TypeDocumentExported = "document.exported"
	TypeDocumentImported = "document.imported"
)

func newBase(eventType, location string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.New().String(),
		AggregateID: location,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// DocumentExported is raised after a document was fully written to a sink
type DocumentExported struct {
	BaseEvent
	Location string             `json:"location"`
	Bytes    int                `json:"bytes"`
	Summary  aggregates.Summary `json:"summary"`
}

// NewDocumentExported creates a DocumentExported event
func NewDocumentExported(location string, size int, summary aggregates.Summary, timestamp time.Time) DocumentExported {
	return DocumentExported{
		BaseEvent: newBase(TypeDocumentExported, location, timestamp),
		Location:  location,
		Bytes:     size,
		Summary:   summary,
	}
}

// DocumentImported is raised after a document was read, validated and decoded
type DocumentImported struct {
	BaseEvent
	Location string             `json:"location"`
	Bytes    int                `json:"bytes"`
	Summary  aggregates.Summary `json:"summary"`
}

// NewDocumentImported creates a DocumentImported event
func NewDocumentImported(location string, size int, summary aggregates.Summary, timestamp time.Time) DocumentImported {
	return DocumentImported{
		BaseEvent: newBase(TypeDocumentImported, location, timestamp),
		Location:  location,
		Bytes:     size,
		Summary:   summary,
	}
}
