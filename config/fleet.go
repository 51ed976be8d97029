package config

import "github.com/evfleet/demometrics/core/model"

// FleetConfig defines the simulated fleet and the synthesizer seams.
type FleetConfig struct {
	TotalVehicles  int `json:"total_vehicles"`
	V2GEnabled     int `json:"v2g_enabled"`
	BaselineActive int `json:"baseline_active"`
	// Seed makes the synthesized values reproducible. Zero seeds from the
	// current time.
	Seed int64 `json:"seed"`
	// HistoryCapacity bounds the in-memory scaling operation log.
	HistoryCapacity int `json:"history_capacity"`
}

// SetDefaults applies the demo fleet sizing the dashboards are built around.
func (c *FleetConfig) SetDefaults() {
	if c.TotalVehicles == 0 {
		c.TotalVehicles = 125
	}
	if c.V2GEnabled == 0 {
		c.V2GEnabled = 89
	}
	if c.BaselineActive == 0 {
		c.BaselineActive = 34
	}
	if c.HistoryCapacity == 0 {
		c.HistoryCapacity = 256
	}
}

// Model converts the section into the core fleet configuration.
func (c FleetConfig) Model() model.FleetConfig {
	return model.FleetConfig{
		TotalVehicles:  c.TotalVehicles,
		V2GEnabled:     c.V2GEnabled,
		BaselineActive: c.BaselineActive,
	}
}

// Validate checks the fleet invariants.
func (c FleetConfig) Validate() error {
	return c.Model().Validate()
}
