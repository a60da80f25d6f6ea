package di

import (
	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/ports"
	querybus "cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/catalog"
	"cathedral-bridge/infrastructure/config"
	"cathedral-bridge/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      ports.DocumentStore
	Publisher  ports.EventPublisher
	Collector  *observability.Collector
	Metrics    ports.MetricsRecorder
	Tracer     ports.Tracer
	Manager    *services.ExportManager
	Catalog    *catalog.Catalog
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}

// Close flushes the logger
func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
