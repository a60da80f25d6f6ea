package services

import (
	"context"
	"time"

	"cathedral-bridge/application/ports"
	"cathedral-bridge/domain/codec"
	"cathedral-bridge/domain/core/aggregates"
	"cathedral-bridge/domain/core/validators"
	"cathedral-bridge/domain/events"
	"cathedral-bridge/domain/interchange"
	pkgerrors "cathedral-bridge/pkg/errors"

	"go.uber.org/zap"
)

// Operation names reported to metrics and traces
const (
	OperationExport   = "export"
	OperationImport   = "import"
	OperationValidate = "validate"
)

// ExportManager moves bundles between runtimes through sinks and sources.
// Every document is validated before it is written and after it is read.
// Nothing is retried.
type ExportManager struct {
	encoder   *codec.Encoder
	decoder   *codec.Decoder
	validator *validators.DocumentValidator
	publisher ports.EventPublisher
	metrics   ports.MetricsRecorder
	tracer    ports.Tracer
	logger    *zap.Logger
	indent    bool
	now       func() time.Time
}

// NewExportManager creates a manager. publisher, metrics and tracer are optional.
func NewExportManager(
	validator *validators.DocumentValidator,
	form interchange.VertexForm,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	tracer ports.Tracer,
	logger *zap.Logger,
) *ExportManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportManager{
		encoder:   codec.NewEncoder(codec.EncoderOptions{VertexForm: form}),
		decoder:   codec.NewDecoder(validator),
		validator: validator,
		publisher: publisher,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
		indent:    true,
		now:       time.Now,
	}
}

// WithVertexForm returns a manager that writes vertices in the given form
func (m *ExportManager) WithVertexForm(form interchange.VertexForm) *ExportManager {
	clone := *m
	clone.encoder = codec.NewEncoder(codec.EncoderOptions{VertexForm: form})
	return &clone
}

// Render encodes, validates and serializes a bundle without writing it anywhere
func (m *ExportManager) Render(bundle *aggregates.Bundle) ([]byte, error) {
	doc, err := m.encoder.Encode(bundle)
	if err != nil {
		return nil, err
	}
	if err := m.validator.Validate(doc); err != nil {
		return nil, err
	}
	return codec.Marshal(doc, m.indent)
}

// ExportTo writes bundle to sink as one complete document
func (m *ExportManager) ExportTo(ctx context.Context, sink ports.Sink, bundle *aggregates.Bundle) error {
	start := m.now()
	var size int

	err := m.trace(ctx, "ExportTo", func(ctx context.Context) error {
		data, err := m.Render(bundle)
		if err != nil {
			return err
		}
		size = len(data)

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Write(ctx, data); err != nil {
			if pkgerrors.IsSink(err) {
				return err
			}
			return pkgerrors.NewSinkError(sink.Location(), err)
		}
		return nil
	})

	duration := m.now().Sub(start)
	m.observe(OperationExport, duration, size, err)
	if err != nil {
		m.logger.Warn("Export failed",
			zap.String("location", sink.Location()),
			zap.String("code", pkgerrors.Code(err)),
			zap.Error(err),
		)
		return err
	}

	summary := bundle.Summarize()
	m.logger.Info("Document exported",
		zap.String("location", sink.Location()),
		zap.Int("bytes", size),
		zap.Int("vertices", summary.VertexCount),
		zap.Int("nodes", summary.NodeCount),
		zap.Duration("duration", duration),
	)
	m.publish(ctx, events.NewDocumentExported(sink.Location(), size, summary, m.now()))
	return nil
}

// ImportFrom reads, validates and decodes the document held by source
func (m *ExportManager) ImportFrom(ctx context.Context, source ports.Source) (*aggregates.Bundle, error) {
	start := m.now()
	var (
		size   int
		bundle *aggregates.Bundle
	)

	err := m.trace(ctx, "ImportFrom", func(ctx context.Context) error {
		data, err := source.Read(ctx)
		if err != nil {
			if pkgerrors.IsSource(err) || pkgerrors.IsNotFound(err) {
				return err
			}
			return pkgerrors.NewSourceError(source.Location(), err)
		}
		size = len(data)

		doc, err := codec.Parse(data)
		if err != nil {
			return err
		}
		bundle, err = m.decoder.Decode(doc)
		return err
	})

	duration := m.now().Sub(start)
	m.observe(OperationImport, duration, size, err)
	if err != nil {
		m.logger.Warn("Import failed",
			zap.String("location", source.Location()),
			zap.String("code", pkgerrors.Code(err)),
			zap.Error(err),
		)
		return nil, err
	}

	summary := bundle.Summarize()
	m.logger.Info("Document imported",
		zap.String("location", source.Location()),
		zap.Int("bytes", size),
		zap.Int("vertices", summary.VertexCount),
		zap.Int("nodes", summary.NodeCount),
		zap.Duration("duration", duration),
	)
	m.publish(ctx, events.NewDocumentImported(source.Location(), size, summary, m.now()))
	return bundle, nil
}

// Validate parses and validates a serialized document without decoding it
func (m *ExportManager) Validate(ctx context.Context, data []byte) error {
	start := m.now()
	err := m.trace(ctx, "Validate", func(ctx context.Context) error {
		doc, err := codec.Parse(data)
		if err != nil {
			return err
		}
		return m.validator.Validate(doc)
	})
	m.observe(OperationValidate, m.now().Sub(start), len(data), err)
	return err
}

func (m *ExportManager) trace(ctx context.Context, name string, fn func(context.Context) error) error {
	if m.tracer == nil {
		return fn(ctx)
	}
	return m.tracer.Trace(ctx, name, fn)
}

func (m *ExportManager) observe(operation string, duration time.Duration, size int, err error) {
	if m.metrics != nil {
		m.metrics.ObserveOperation(operation, duration, size, err)
	}
}

func (m *ExportManager) publish(ctx context.Context, event events.DomainEvent) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		m.logger.Error("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("eventID", event.GetEventID()),
			zap.Error(err),
		)
	}
}
