package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
	"github.com/evfleet/demometrics/core/model"
)

func TestPromSink_RecordDemoRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.DemoRequestEvent{
		DemoType: "v2g",
		Method:   "GET",
		Status:   200,
		Duration: 20 * time.Millisecond,
		Time:     time.Now(),
	}
	if err := sink.RecordDemoRequest(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP demo_requests_total Total number of demo metrics requests
# TYPE demo_requests_total counter
demo_requests_total{demo_type="v2g",method="GET",status="200"} 1
`
	if err := testutil.CollectAndCompare(sink.requests, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.latency); c == 0 {
		t.Errorf("latency not recorded")
	}
}

func TestPromSink_RecordFleetSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.FleetSnapshotEvent{
		Summary:          model.FleetSummary{ActiveV2G: 42},
		TotalDischargeKW: 390.5,
		Time:             time.Now(),
	}
	if err := sink.RecordFleetSnapshot(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if v := testutil.ToFloat64(sink.active); v != 42 {
		t.Errorf("active gauge %v", v)
	}
	if v := testutil.ToFloat64(sink.discharge); v != 390.5 {
		t.Errorf("discharge gauge %v", v)
	}
}

func TestPromSink_RecordScalingOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordScalingOperation(coremetrics.ScalingEvent{Success: false}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	expected := `
# HELP scaling_operations_total Total number of fleet scaling operations
# TYPE scaling_operations_total counter
scaling_operations_total{success="false"} 1
`
	if err := testutil.CollectAndCompare(sink.scalings, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second register: %v", err)
	}
}
