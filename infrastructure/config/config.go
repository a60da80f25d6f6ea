package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	domainconfig "cathedral-bridge/domain/config"
	"cathedral-bridge/domain/interchange"
	"cathedral-bridge/pkg/utils"

	"gopkg.in/yaml.v3"
)

// Store and metrics backends
const (
	StoreFilesystem = "filesystem"
	StoreMemory     = "memory"
	StoreDynamoDB   = "dynamodb"

	MetricsPrometheus = "prometheus"
	MetricsCloudWatch = "cloudwatch"
	MetricsNone       = "none"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address" validate:"required"`
	Environment   string `yaml:"environment" validate:"oneof=development staging production"`

	// Logging
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Storage
	StoreBackend   string `yaml:"store_backend" validate:"oneof=filesystem memory dynamodb"`
	StoreDirectory string `yaml:"store_directory" validate:"required_if=StoreBackend filesystem"`
	AWSRegion      string `yaml:"aws_region"`
	DynamoDBTable  string `yaml:"dynamodb_table" validate:"required_if=StoreBackend dynamodb"`
	EventBusName   string `yaml:"event_bus_name"`

	// Circuit breaker around the store
	EnableCircuitBreaker bool `yaml:"enable_circuit_breaker"`

	// Observability
	MetricsBackend   string `yaml:"metrics_backend" validate:"oneof=prometheus cloudwatch none"`
	MetricsNamespace string `yaml:"metrics_namespace" validate:"required"`
	EnableTracing    bool   `yaml:"enable_tracing"`

	// HTTP
	EnableCORS         bool     `yaml:"enable_cors"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MaxPayloadBytes    int64    `yaml:"max_payload_bytes" validate:"gt=0"`

	// Authentication
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// Interchange
	VertexForm     string `yaml:"vertex_form" validate:"oneof=object array"`
	DefaultSystem  string `yaml:"default_system" validate:"required"`
	DefaultVersion string `yaml:"default_version" validate:"required"`

	// Validation limits; zero disables a limit
	MaxVertices         int `yaml:"max_vertices" validate:"min=0"`
	MaxEdges            int `yaml:"max_edges" validate:"min=0"`
	MaxNodes            int `yaml:"max_nodes" validate:"min=0"`
	MaxConnections      int `yaml:"max_connections" validate:"min=0"`
	MaxValidationErrors int `yaml:"max_validation_errors" validate:"min=1"`
}

// Default returns the configuration used before any file or environment overrides
func Default() *Config {
	limits := domainconfig.DefaultBridgeConfig()
	return &Config{
		ServerAddress:       ":8080",
		Environment:         "development",
		LogLevel:            "info",
		StoreBackend:        StoreFilesystem,
		StoreDirectory:      "outputs",
		AWSRegion:           "us-west-2",
		MetricsBackend:      MetricsPrometheus,
		MetricsNamespace:    "cathedral_bridge",
		EnableCORS:          true,
		CORSAllowedOrigins:  []string{"*"},
		MaxPayloadBytes:     16 << 20,
		JWTIssuer:           "cathedral-bridge",
		VertexForm:          string(interchange.VertexFormObject),
		DefaultSystem:       limits.DefaultSystem,
		DefaultVersion:      limits.DefaultVersion,
		MaxVertices:         limits.MaxVertices,
		MaxEdges:            limits.MaxEdges,
		MaxNodes:            limits.MaxNodes,
		MaxConnections:      limits.MaxConnections,
		MaxValidationErrors: limits.MaxValidationErrors,
	}
}

// LoadConfig loads configuration from defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variables.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadEnvironmentVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnvironmentVariables() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)
	c.StoreDirectory = getEnv("STORE_DIRECTORY", c.StoreDirectory)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)
	c.EnableCircuitBreaker = getEnvBool("ENABLE_CIRCUIT_BREAKER", c.EnableCircuitBreaker)

	c.MetricsBackend = getEnv("METRICS_BACKEND", c.MetricsBackend)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)

	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.MaxPayloadBytes = int64(getEnvInt("MAX_PAYLOAD_BYTES", int(c.MaxPayloadBytes)))

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)

	c.VertexForm = getEnv("VERTEX_FORM", c.VertexForm)
	c.DefaultSystem = getEnv("DEFAULT_SYSTEM", c.DefaultSystem)
	c.DefaultVersion = getEnv("DEFAULT_VERSION", c.DefaultVersion)

	c.MaxVertices = getEnvInt("MAX_VERTICES", c.MaxVertices)
	c.MaxEdges = getEnvInt("MAX_EDGES", c.MaxEdges)
	c.MaxNodes = getEnvInt("MAX_NODES", c.MaxNodes)
	c.MaxConnections = getEnvInt("MAX_CONNECTIONS", c.MaxConnections)
	c.MaxValidationErrors = getEnvInt("MAX_VALIDATION_ERRORS", c.MaxValidationErrors)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuthEnabled reports whether API requests need a bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Bridge maps the configuration onto the domain validation limits
func (c *Config) Bridge() *domainconfig.BridgeConfig {
	bridge := domainconfig.DefaultBridgeConfig()
	bridge.MaxVertices = c.MaxVertices
	bridge.MaxEdges = c.MaxEdges
	bridge.MaxNodes = c.MaxNodes
	bridge.MaxConnections = c.MaxConnections
	bridge.MaxValidationErrors = c.MaxValidationErrors
	bridge.DefaultSystem = c.DefaultSystem
	bridge.DefaultVersion = c.DefaultVersion
	return bridge
}

// Form returns the configured vertex form; Validate has already checked it
func (c *Config) Form() interchange.VertexForm {
	form, err := interchange.ParseVertexForm(c.VertexForm)
	if err != nil {
		return interchange.VertexFormObject
	}
	return form
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
