package ports

import (
	"context"
	"time"

	"cathedral-bridge/domain/events"
)

// Sink receives one complete serialized document per Write call.
// Implementations must never leave a partial document visible to readers.
type Sink interface {
	Write(ctx context.Context, data []byte) error

	// Location names the destination in logs and errors
	Location() string
}

// Source yields one complete serialized document
type Source interface {
	Read(ctx context.Context) ([]byte, error)

	// Location names the origin in logs and errors
	Location() string
}

// DocumentInfo describes a stored document
type DocumentInfo struct {
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentStore hands out sinks and sources for named documents
type DocumentStore interface {
	Sink(name string) Sink
	Source(name string) Source
	List(ctx context.Context) ([]DocumentInfo, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// MetricsRecorder records the outcome of bridge operations
type MetricsRecorder interface {
	// ObserveOperation records one export, import or validation; err may be nil
	ObserveOperation(operation string, duration time.Duration, bytes int, err error)
}

// Tracer wraps an operation in a trace segment when tracing is enabled
type Tracer interface {
	Trace(ctx context.Context, name string, fn func(context.Context) error) error
}
