package metrics

import (
	"time"

	"github.com/evfleet/demometrics/core/model"
)

// DemoRequestEvent captures one handled demo metrics request.
type DemoRequestEvent struct {
	DemoType       string
	Method         string
	Status         int
	ActiveVehicles int
	Duration       time.Duration
	Time           time.Time
}

// FleetSnapshotEvent is a summary of one synthesized v2g payload.
type FleetSnapshotEvent struct {
	Summary           model.FleetSummary
	TotalDischargeKW  float64
	RevenuePerHour    float64
	ParticipationRate float64
	Time              time.Time
}

// ScalingEvent records a scaling operation executed via the POST endpoint.
type ScalingEvent struct {
	OperationID     string
	RequestedTarget int
	AchievedTarget  int
	Success         bool
	Mode            string
	Time            time.Time
}

// MetricsSink records request-level observability events.
type MetricsSink interface {
	RecordDemoRequest(ev DemoRequestEvent) error
}

// FleetSnapshotRecorder records payload summaries.
type FleetSnapshotRecorder interface {
	RecordFleetSnapshot(ev FleetSnapshotEvent) error
}

// ScalingRecorder records scaling operations.
type ScalingRecorder interface {
	RecordScalingOperation(ev ScalingEvent) error
}

// NopSink implements all recorder interfaces with no-op methods.
type NopSink struct{}

func (NopSink) RecordDemoRequest(DemoRequestEvent) error     { return nil }
func (NopSink) RecordFleetSnapshot(FleetSnapshotEvent) error { return nil }
func (NopSink) RecordScalingOperation(ScalingEvent) error    { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
