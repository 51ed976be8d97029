package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  addr: ":9999"
fleet:
  total_vehicles: 200
  v2g_enabled: 120
  baseline_active: 40
  seed: 7
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
feed:
  enabled: false
  topic_prefix: "fleet/test"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Server.Addr)
	require.Equal(t, 200, cfg.Fleet.TotalVehicles)
	require.Equal(t, 120, cfg.Fleet.V2GEnabled)
	require.Equal(t, 40, cfg.Fleet.BaselineActive)
	require.Equal(t, int64(7), cfg.Fleet.Seed)
	require.True(t, cfg.Metrics.PrometheusEnabled)
	require.Equal(t, ":9100", cfg.Metrics.PrometheusPort)
	require.Equal(t, "fleet/test", cfg.Feed.TopicPrefix)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server: {}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 125, cfg.Fleet.TotalVehicles)
	require.Equal(t, 89, cfg.Fleet.V2GEnabled)
	require.Equal(t, 34, cfg.Fleet.BaselineActive)
	require.Equal(t, 256, cfg.Fleet.HistoryCapacity)
	require.Equal(t, "fleet/demo", cfg.Feed.TopicPrefix)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  addr: ":8080"
`)
	t.Setenv("DM_SERVER__ADDR", ":7777")
	t.Setenv("DM_FLEET__SEED", "99")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7777", cfg.Server.Addr)
	require.Equal(t, int64(99), cfg.Fleet.Seed)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", `server`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidFleet(t *testing.T) {
	path := writeConfig(t, "config.yaml", `fleet:
  total_vehicles: 50
  v2g_enabled: 80
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_FeedRequiresBroker(t *testing.T) {
	path := writeConfig(t, "config.yaml", `feed:
  enabled: true
`)
	_, err := Load(path)
	require.Error(t, err)
}
