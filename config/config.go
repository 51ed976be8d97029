package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
	"github.com/evfleet/demometrics/infra/monitoring"
	"github.com/evfleet/demometrics/infra/mqtt"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig       `json:"server"`
	Fleet   FleetConfig        `json:"fleet"`
	Metrics coremetrics.Config `json:"metrics"`
	Feed    mqtt.Config        `json:"feed"`
	Sentry  monitoring.Config  `json:"sentry"`
}

// Load reads the configuration file at path, applies environment overrides
// and validates the result. YAML and JSON files are supported.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. DM_SERVER__ADDR. The callback
	// rewrites the variable names to dot-delimited koanf paths, so the
	// provider must unflatten on the dot.
	if err := k.Load(env.Provider("DM_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dm_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Fleet.SetDefaults()
	cfg.Feed.SetDefaults()
	if cfg.Metrics.PrometheusEnabled && cfg.Metrics.PrometheusPort == "" {
		cfg.Metrics.PrometheusPort = ":2112"
	}
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Fleet.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Feed.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
