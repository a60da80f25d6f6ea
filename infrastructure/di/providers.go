package di

import (
	"context"

	"cathedral-bridge/application/commands"
	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/queries"
	querybus "cathedral-bridge/application/queries/bus"
	"cathedral-bridge/application/services"
	"cathedral-bridge/domain/catalog"
	"cathedral-bridge/domain/core/validators"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/infrastructure/config"
	"cathedral-bridge/infrastructure/messaging"
	"cathedral-bridge/infrastructure/messaging/eventbridge"
	"cathedral-bridge/infrastructure/persistence/dynamodb"
	"cathedral-bridge/infrastructure/persistence/filesystem"
	"cathedral-bridge/infrastructure/persistence/memory"
	"cathedral-bridge/infrastructure/persistence/resilient"
	"cathedral-bridge/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Environment, cfg.LogLevel)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideDocumentStore selects the configured store backend, optionally
// behind a circuit breaker
func ProvideDocumentStore(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.DocumentStore {
	var store ports.DocumentStore
	switch cfg.StoreBackend {
	case config.StoreDynamoDB:
		store = dynamodb.NewDocumentStore(client, cfg.DynamoDBTable, logger)
	case config.StoreMemory:
		store = memory.NewStore()
	default:
		store = filesystem.NewDirectoryStore(cfg.StoreDirectory, cfg.MaxPayloadBytes)
	}

	logger.Info("Document store configured",
		zap.String("backend", cfg.StoreBackend),
		zap.Bool("circuitBreaker", cfg.EnableCircuitBreaker),
	)

	if cfg.EnableCircuitBreaker {
		return resilient.NewBreakerStore(store, resilient.DefaultBreakerConfig("store-"+cfg.StoreBackend), logger)
	}
	return store
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured and
// to the log otherwise
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return messaging.NewLogPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCollector creates the Prometheus collector. It is created for every
// backend so the HTTP middleware always has somewhere to record.
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.MetricsNamespace)
}

// ProvideMetricsRecorder selects where operation metrics go; nil disables them
func ProvideMetricsRecorder(
	cfg *config.Config,
	collector *observability.Collector,
	client *awscloudwatch.Client,
	logger *zap.Logger,
) ports.MetricsRecorder {
	switch cfg.MetricsBackend {
	case config.MetricsCloudWatch:
		return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
	case config.MetricsNone:
		return nil
	default:
		return collector
	}
}

// ProvideTracer returns an X-Ray tracer when tracing is enabled, nil otherwise
func ProvideTracer(cfg *config.Config) ports.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("cathedral-bridge")
}

// ProvideDocumentValidator creates the validator with the configured limits
func ProvideDocumentValidator(cfg *config.Config) *validators.DocumentValidator {
	return validators.NewDocumentValidator(cfg.Bridge())
}

// ProvideExportManager creates the export manager
func ProvideExportManager(
	cfg *config.Config,
	validator *validators.DocumentValidator,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	tracer ports.Tracer,
	logger *zap.Logger,
) *services.ExportManager {
	return services.NewExportManager(validator, cfg.Form(), publisher, metrics, tracer, logger)
}

// ProvideCatalog creates the preset catalog
func ProvideCatalog() *catalog.Catalog {
	return catalog.New()
}

// ProvideCommandBus creates the command bus with all handlers registered
func ProvideCommandBus(
	cfg *config.Config,
	manager *services.ExportManager,
	cat *catalog.Catalog,
	store ports.DocumentStore,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(&zapLoggerAdapter{logger: logger}))

	if err := commandBus.Register(commands.StoreDocumentCommand{},
		commands.NewStoreDocumentHandler(manager, store, logger)); err != nil {
		return nil, err
	}
	if err := commandBus.Register(commands.ExportPresetCommand{},
		commands.NewExportPresetHandler(manager, cat, store, defaultMetadata(cfg), logger)); err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all handlers registered
func ProvideQueryBus(
	cfg *config.Config,
	manager *services.ExportManager,
	cat *catalog.Catalog,
	store ports.DocumentStore,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(&zapLoggerAdapter{logger: logger}))
	presets := queries.NewPresetHandler(manager, cat, defaultMetadata(cfg))

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetDocumentQuery{}, queries.NewGetDocumentHandler(manager, store)},
		{queries.ListDocumentsQuery{}, queries.NewListDocumentsHandler(store)},
		{queries.ValidateDocumentQuery{}, queries.NewValidateDocumentHandler(manager)},
		{queries.ListPresetsQuery{}, presets},
		{queries.RenderPresetQuery{}, presets},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}

func defaultMetadata(cfg *config.Config) valueobjects.Metadata {
	return valueobjects.NewMetadata(cfg.DefaultSystem, cfg.DefaultVersion)
}

// zapLoggerAdapter adapts zap.Logger to the bus Logger interfaces
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			if err, ok := fields[i+1].(error); ok {
				zapFields = append(zapFields, zap.NamedError(key, err))
				continue
			}
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
