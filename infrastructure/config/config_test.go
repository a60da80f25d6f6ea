package config

import (
	"os"
	"path/filepath"
	"testing"

	"cathedral-bridge/domain/interchange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, StoreFilesystem, cfg.StoreBackend)
	assert.Equal(t, MetricsPrometheus, cfg.MetricsBackend)
	assert.Equal(t, interchange.VertexFormObject, cfg.Form())
	assert.False(t, cfg.AuthEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_backend: dynamodb
dynamodb_table: from-file
vertex_form: array
max_vertices: 10
cors_allowed_origins: ["https://cathedral.example"]
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DYNAMODB_TABLE", "from-env")
	t.Setenv("MAX_EDGES", "20")
	t.Setenv("ENABLE_TRACING", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreDynamoDB, cfg.StoreBackend)
	assert.Equal(t, "from-env", cfg.DynamoDBTable)
	assert.Equal(t, interchange.VertexFormArray, cfg.Form())
	assert.Equal(t, []string{"https://cathedral.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableTracing)

	bridge := cfg.Bridge()
	assert.Equal(t, 10, bridge.MaxVertices)
	assert.Equal(t, 20, bridge.MaxEdges)
	assert.Equal(t, "cathedral", bridge.DefaultSystem)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"STORE_BACKEND": "s3"}},
		{"dynamodb without table", map[string]string{"STORE_BACKEND": "dynamodb"}},
		{"unknown vertex form", map[string]string{"VERTEX_FORM": "polar"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}
