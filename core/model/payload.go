package model

import "time"

// ScalingInfo reports how the participation rate was derived for a request.
type ScalingInfo struct {
	RequestedTarget   int     `json:"requested_target"`
	ParticipationRate float64 `json:"participation_rate"`
	ScalingFactor     float64 `json:"scaling_factor"`
	BaselineActive    int     `json:"baseline_active_vehicles"`
	GridDemandFactor  float64 `json:"grid_demand_factor"`
	PeakHour          bool    `json:"peak_hour"`
}

// FleetSummary aggregates the simulated fleet state.
type FleetSummary struct {
	TotalVehicles     int     `json:"total_vehicles"`
	V2GEnabled        int     `json:"v2g_enabled_vehicles"`
	ActiveV2G         int     `json:"active_v2g_vehicles"`
	AverageBatterySoC float64 `json:"average_battery_soc"`
}

// GridIntegration summarizes the grid-side contribution of active vehicles.
type GridIntegration struct {
	TotalDischargeKW    float64        `json:"total_discharge_kw"`
	GridDemandFactor    float64        `json:"grid_demand_factor"`
	ServiceDistribution map[string]int `json:"service_distribution"`
	OptimizeGrid        bool           `json:"optimize_grid"`
}

// RevenueAnalytics extrapolates per-hour earnings to daily and monthly
// projections (8 discharge hours per day, 30 days per month).
type RevenueAnalytics struct {
	RevenuePerHour          float64 `json:"revenue_per_hour"`
	ProjectedDailyRevenue   float64 `json:"projected_daily_revenue"`
	ProjectedMonthlyRevenue float64 `json:"projected_monthly_revenue"`
	AverageEarningsPerHour  float64 `json:"average_earnings_per_vehicle"`
	EarningsStdDev          float64 `json:"earnings_std_dev"`
}

// V2GPayload is the full response body for a v2g demo request.
type V2GPayload struct {
	Timestamp       time.Time        `json:"timestamp"`
	ScalingInfo     ScalingInfo      `json:"scaling_info"`
	FleetSummary    FleetSummary     `json:"fleet_summary"`
	GridIntegration GridIntegration  `json:"grid_integration"`
	RealTimeV2G     []VehicleV2G     `json:"real_time_v2g"`
	Recommendations []string         `json:"optimization_recommendations"`
	Revenue         RevenueAnalytics `json:"revenue_analytics"`
}

// FleetMetrics is the static-shaped snapshot served when no specific demo
// type is requested.
type FleetMetrics struct {
	TotalVehicles     int     `json:"total_vehicles"`
	OnlineVehicles    int     `json:"online_vehicles"`
	ChargingSessions  int     `json:"charging_sessions_active"`
	AverageBatterySoC float64 `json:"average_battery_soc"`
}

// EnergyMetrics carries the energy counters of the default snapshot.
type EnergyMetrics struct {
	DeliveredTodayKWh float64 `json:"energy_delivered_today_kwh"`
	PeakLoadKW        float64 `json:"peak_load_kw"`
	CarbonOffsetKg    float64 `json:"carbon_offset_kg"`
}

// DefaultSnapshot is the response body for non-v2g demo requests.
type DefaultSnapshot struct {
	Timestamp     time.Time     `json:"timestamp"`
	FleetMetrics  FleetMetrics  `json:"fleet_metrics"`
	EnergyMetrics EnergyMetrics `json:"energy_metrics"`
}

// ScalingResult summarizes a scaling operation requested via POST.
type ScalingResult struct {
	OperationID       string    `json:"operation_id"`
	Timestamp         time.Time `json:"timestamp"`
	RequestedTarget   int       `json:"requested_target"`
	AchievedTarget    int       `json:"achieved_target"`
	ScalingSuccess    bool      `json:"scaling_success"`
	OptimizationMode  string    `json:"optimization_mode"`
	ParticipationRate float64   `json:"participation_rate"`
	RampMinutes       int       `json:"estimated_ramp_minutes"`
}
