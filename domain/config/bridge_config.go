package config

// BridgeConfig holds the limits applied when validating interchange documents
type BridgeConfig struct {
	// Section size limits; zero disables the limit
	MaxVertices    int
	MaxEdges       int
	MaxNodes       int
	MaxConnections int

	// MaxAttributesPerNode bounds the attribute map of a single fractal node
	MaxAttributesPerNode int

	// MaxValidationErrors caps how many violations one validation run collects
	MaxValidationErrors int

	// DefaultSystem and DefaultVersion fill metadata for presets
	DefaultSystem  string
	DefaultVersion string
}

// DefaultBridgeConfig returns the default bridge configuration
func DefaultBridgeConfig() *BridgeConfig {
	return &BridgeConfig{
		MaxVertices:          100000,
		MaxEdges:             250000,
		MaxNodes:             50000,
		MaxConnections:       250000,
		MaxAttributesPerNode: 256,
		MaxValidationErrors:  50,
		DefaultSystem:        "cathedral",
		DefaultVersion:       "1.0",
	}
}
