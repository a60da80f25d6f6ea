// Package resilient guards a document store with a circuit breaker so a failing
// backend is reported quickly instead of being hammered. It never retries.
package resilient

import (
	"context"
	"errors"
	"time"

	"cathedral-bridge/application/ports"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration

	// FailureThreshold is the failure ratio that trips the breaker once
	// MinRequests have been observed
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the circuit breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerStore wraps a ports.DocumentStore. Only infrastructure failures count
// against the breaker; a missing document is a normal answer.
type BreakerStore struct {
	inner   ports.DocumentStore
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBreakerStore wraps inner
func NewBreakerStore(inner ports.DocumentStore, config BreakerConfig, logger *zap.Logger) *BreakerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BreakerStore{inner: inner, logger: logger}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil || pkgerrors.IsNotFound(err) {
				return true
			}
			return !(pkgerrors.IsSink(err) || pkgerrors.IsSource(err))
		},
	})
	return s
}

// State returns the breaker state for health reporting
func (s *BreakerStore) State() gobreaker.State {
	return s.breaker.State()
}

// Sink implements ports.DocumentStore
func (s *BreakerStore) Sink(name string) ports.Sink {
	return &guardedSink{store: s, inner: s.inner.Sink(name)}
}

// Source implements ports.DocumentStore
func (s *BreakerStore) Source(name string) ports.Source {
	return &guardedSource{store: s, inner: s.inner.Source(name)}
}

// List implements ports.DocumentStore
func (s *BreakerStore) List(ctx context.Context) ([]ports.DocumentInfo, error) {
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.List(ctx)
	})
	if err != nil {
		return nil, s.rejected(err, func(cause error) error { return pkgerrors.NewSourceError("document store", cause) })
	}
	return out.([]ports.DocumentInfo), nil
}

// rejected maps an open breaker onto the sink or source taxonomy
func (s *BreakerStore) rejected(err error, wrap func(error) error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return wrap(err)
	}
	return err
}

type guardedSink struct {
	store *BreakerStore
	inner ports.Sink
}

func (g *guardedSink) Write(ctx context.Context, data []byte) error {
	_, err := g.store.breaker.Execute(func() (interface{}, error) {
		return nil, g.inner.Write(ctx, data)
	})
	if err != nil {
		return g.store.rejected(err, func(cause error) error { return pkgerrors.NewSinkError(g.inner.Location(), cause) })
	}
	return nil
}

func (g *guardedSink) Location() string {
	return g.inner.Location()
}

type guardedSource struct {
	store *BreakerStore
	inner ports.Source
}

func (g *guardedSource) Read(ctx context.Context) ([]byte, error) {
	out, err := g.store.breaker.Execute(func() (interface{}, error) {
		return g.inner.Read(ctx)
	})
	if err != nil {
		return nil, g.store.rejected(err, func(cause error) error { return pkgerrors.NewSourceError(g.inner.Location(), cause) })
	}
	return out.([]byte), nil
}

func (g *guardedSource) Location() string {
	return g.inner.Location()
}
