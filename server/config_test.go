package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `
service_name: my-planner
port: 9090
endpoint: /query
supergraph_file: supergraph.graphql
timeout_duration: 10s
subgraph_timeout: 2s
opentelemetry:
  tracing:
    enable: true
`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "my-planner", settings.ServiceName)
	require.Equal(t, 9090, settings.Port)
	require.Equal(t, "/query", settings.Endpoint)
	require.Equal(t, "supergraph.graphql", settings.SupergraphFile)
	require.Equal(t, "10s", settings.TimeoutDuration)
	require.Equal(t, "2s", settings.SubgraphTimeout)
	require.True(t, settings.Opentelemetry.Tracing.Enable)
}

func TestLoadSettingsDefaults(t *testing.T) {
	path := writeSettings(t, `supergraph_file: supergraph.graphql`)

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "federation-planner", settings.ServiceName)
	require.Equal(t, 8080, settings.Port)
	require.Equal(t, "/graphql", settings.Endpoint)
	require.Equal(t, "5s", settings.TimeoutDuration)
	require.Equal(t, "3s", settings.SubgraphTimeout)
	require.False(t, settings.Opentelemetry.Tracing.Enable)
}

func TestLoadSettingsRequiresSupergraph(t *testing.T) {
	path := writeSettings(t, `port: 8080`)

	_, err := LoadSettings(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "supergraph_file is required")
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
