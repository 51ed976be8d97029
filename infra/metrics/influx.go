package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
	"github.com/evfleet/demometrics/infra/logger"
)

// InfluxSink writes demo request events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordDemoRequest writes the request event as a point.
func (s *InfluxSink) RecordDemoRequest(ev coremetrics.DemoRequestEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("demo_request").
		AddTag("demo_type", ev.DemoType).
		AddTag("method", ev.Method).
		AddTag("status", strconv.Itoa(ev.Status)).
		AddTag("component", "demo_api").
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		AddField("active_vehicles", ev.ActiveVehicles).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordFleetSnapshot persists a payload summary.
func (s *InfluxSink) RecordFleetSnapshot(ev coremetrics.FleetSnapshotEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fleet_snapshot").
		AddTag("component", "demo_api").
		AddField("active_vehicles", ev.Summary.ActiveV2G).
		AddField("total_discharge_kw", round3(ev.TotalDischargeKW)).
		AddField("revenue_per_hour", round3(ev.RevenuePerHour)).
		AddField("participation_rate", round3(ev.ParticipationRate)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordScalingOperation persists a scaling operation.
func (s *InfluxSink) RecordScalingOperation(ev coremetrics.ScalingEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("scaling_operation").
		AddTag("operation_id", ev.OperationID).
		AddTag("success", strconv.FormatBool(ev.Success)).
		AddTag("mode", ev.Mode).
		AddTag("component", "demo_api").
		AddField("requested_target", ev.RequestedTarget).
		AddField("achieved_target", ev.AchievedTarget).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
