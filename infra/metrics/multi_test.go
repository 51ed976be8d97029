package metrics

import (
	"fmt"
	"testing"
	"time"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
)

type stubSink struct {
	requests  int
	snapshots int
	scalings  int
	fail      bool
}

func (s *stubSink) RecordDemoRequest(coremetrics.DemoRequestEvent) error {
	if s.fail {
		return fmt.Errorf("sink failure")
	}
	s.requests++
	return nil
}

func (s *stubSink) RecordFleetSnapshot(coremetrics.FleetSnapshotEvent) error {
	s.snapshots++
	return nil
}

func (s *stubSink) RecordScalingOperation(coremetrics.ScalingEvent) error {
	s.scalings++
	return nil
}

func TestMultiSink_FanOut(t *testing.T) {
	a, b := &stubSink{}, &stubSink{}
	m := NewMultiSink(a, b)
	ev := coremetrics.DemoRequestEvent{DemoType: "v2g", Time: time.Now()}
	if err := m.RecordDemoRequest(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.requests != 1 || b.requests != 1 {
		t.Fatalf("fan out failed: %d %d", a.requests, b.requests)
	}
	if err := m.RecordFleetSnapshot(coremetrics.FleetSnapshotEvent{}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if err := m.RecordScalingOperation(coremetrics.ScalingEvent{}); err != nil {
		t.Fatalf("scaling: %v", err)
	}
	if a.snapshots != 1 || a.scalings != 1 {
		t.Fatalf("optional recorders not forwarded: %+v", a)
	}
}

func TestMultiSink_FirstError(t *testing.T) {
	a := &stubSink{fail: true}
	b := &stubSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordDemoRequest(coremetrics.DemoRequestEvent{}); err == nil {
		t.Fatalf("expected error")
	}
	if b.requests != 0 {
		t.Fatalf("expected short-circuit, second sink recorded %d", b.requests)
	}
}

func TestMultiSink_NopSink(t *testing.T) {
	m := NewMultiSink(coremetrics.NopSink{})
	if err := m.RecordFleetSnapshot(coremetrics.FleetSnapshotEvent{}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
}
