package model

import "fmt"

// GridServiceType identifies the grid program an active vehicle serves.
type GridServiceType int

const (
	ServiceFrequencyRegulation GridServiceType = iota
	ServiceDemandResponse
	ServicePeakShaving
)

// String returns the wire representation of the service type.
func (t GridServiceType) String() string {
	switch t {
	case ServiceFrequencyRegulation:
		return "frequency_regulation"
	case ServiceDemandResponse:
		return "demand_response"
	case ServicePeakShaving:
		return "peak_shaving"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the service type as its string name.
func (t GridServiceType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes the string name back into a service type.
func (t *GridServiceType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, ok := ServiceTypeFromString(s)
	if !ok {
		return fmt.Errorf("unknown grid service type %q", s)
	}
	*t = v
	return nil
}

// ServiceTypeFromString parses a wire name into a GridServiceType.
func ServiceTypeFromString(s string) (GridServiceType, bool) {
	switch s {
	case "frequency_regulation":
		return ServiceFrequencyRegulation, true
	case "demand_response":
		return ServiceDemandResponse, true
	case "peak_shaving":
		return ServicePeakShaving, true
	default:
		return 0, false
	}
}

// VehicleV2G is one simulated vehicle actively discharging into the grid.
type VehicleV2G struct {
	VehicleID       string          `json:"vehicle_id"`
	BatterySoC      float64         `json:"battery_soc"`
	DischargeRateKW float64         `json:"discharge_rate_kw"`
	EarningsPerHour float64         `json:"earnings_per_hour"`
	GridService     GridServiceType `json:"grid_service_type"`
	V2GEfficiency   float64         `json:"v2g_efficiency"`
}
