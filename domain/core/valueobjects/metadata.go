package valueobjects

import "strings"

// Metadata is the free-form provenance tag carried by every document
type Metadata struct {
	System  string
	Version string
}

// NewMetadata creates metadata; values are trimmed but otherwise untouched
func NewMetadata(system, version string) Metadata {
	return Metadata{
		System:  strings.TrimSpace(system),
		Version: strings.TrimSpace(version),
	}
}

// IsComplete reports whether both system and version are present
func (m Metadata) IsComplete() bool {
	return m.System != "" && m.Version != ""
}

func (m Metadata) String() string {
	return m.System + "@" + m.Version
}

// WithDefaults fills an empty system or version from defaults
func (m Metadata) WithDefaults(defaults Metadata) Metadata {
	if m.System == "" {
		m.System = defaults.System
	}
	if m.Version == "" {
		m.Version = defaults.Version
	}
	return m
}
