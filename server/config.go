package server

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Settings is the planner server configuration, loaded from planner.yaml.
type Settings struct {
	ServiceName     string               `yaml:"service_name"`
	Port            int                  `yaml:"port"`
	Endpoint        string               `yaml:"endpoint"`
	SupergraphFile  string               `yaml:"supergraph_file"`
	TimeoutDuration string               `yaml:"timeout_duration"`
	SubgraphTimeout string               `yaml:"subgraph_timeout"`
	Opentelemetry   OpentelemetrySetting `yaml:"opentelemetry"`
}

// OpentelemetrySetting groups the observability toggles.
type OpentelemetrySetting struct {
	Tracing TracingSetting `yaml:"tracing"`
}

// TracingSetting toggles OTLP trace export.
type TracingSetting struct {
	Enable bool `yaml:"enable"`
}

// LoadSettings reads and validates a settings file, applying defaults for
// everything the file leaves out.
func LoadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := &Settings{
		ServiceName:     "federation-planner",
		Port:            8080,
		Endpoint:        "/graphql",
		TimeoutDuration: "5s",
		SubgraphTimeout: "3s",
	}
	if err := yaml.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if settings.SupergraphFile == "" {
		return nil, fmt.Errorf("supergraph_file is required")
	}
	return settings, nil
}
