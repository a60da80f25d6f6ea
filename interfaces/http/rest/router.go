package rest

import (
	"context"
	"net/http"
	"time"

	"cathedral-bridge/application/commands/bus"
	"cathedral-bridge/application/queries"
	querybus "cathedral-bridge/application/queries/bus"
	"cathedral-bridge/infrastructure/config"
	"cathedral-bridge/interfaces/http/rest/handlers"
	"cathedral-bridge/interfaces/http/rest/middleware"
	"cathedral-bridge/pkg/auth"
	pkgerrors "cathedral-bridge/pkg/errors"
	"cathedral-bridge/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures the HTTP surface
type Options struct {
	EnableCORS      bool
	AllowedOrigins  []string
	JWTSecret       string
	JWTIssuer       string
	MaxPayloadBytes int64
	Debug           bool
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	logger     *zap.Logger
	options    Options
}

// NewRouter creates a new router instance. collector may be nil, in which
// case /metrics is not served.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	logger *zap.Logger,
	options Options,
) *Router {
	if options.MaxPayloadBytes <= 0 {
		options.MaxPayloadBytes = 16 << 20
	}
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		logger:     logger,
		options:    options,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() (http.Handler, error) {
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.options.Debug)
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.options.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-Document-Location"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.collector != nil {
		router.Handle("/metrics", rt.collector.Handler())
	}

	var authenticate func(http.Handler) http.Handler
	if rt.options.JWTSecret != "" {
		validator, err := auth.NewJWTValidator(rt.options.JWTSecret, rt.options.JWTIssuer)
		if err != nil {
			return nil, err
		}
		authenticate = middleware.Authenticate(validator, errorHandler, rt.logger)
	}

	documents := handlers.NewDocumentHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger, rt.options.MaxPayloadBytes)
	presets := handlers.NewPresetHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger, rt.options.MaxPayloadBytes)

	router.Route("/api/v1", func(r chi.Router) {
		if authenticate != nil {
			r.Use(authenticate)
		}

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", documents.ListDocuments)
			r.Post("/validate", documents.ValidateDocument)
			r.Get("/{name}", documents.GetDocument)
			r.Put("/{name}", documents.PutDocument)
		})

		r.Route("/presets", func(r chi.Router) {
			r.Get("/", presets.ListPresets)
			r.Get("/render", presets.RenderPreset)
			r.Post("/export", presets.ExportPreset)
		})
	})

	return router, nil
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the document store answers a listing
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if _, err := rt.queryBus.Ask(ctx, queries.ListDocumentsQuery{Limit: 1}); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// OptionsFromConfig derives router options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		EnableCORS:      cfg.EnableCORS,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		JWTSecret:       cfg.JWTSecret,
		JWTIssuer:       cfg.JWTIssuer,
		MaxPayloadBytes: cfg.MaxPayloadBytes,
		Debug:           cfg.IsDevelopment(),
	}
}
