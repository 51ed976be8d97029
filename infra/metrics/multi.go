package metrics

import coremetrics "github.com/evfleet/demometrics/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDemoRequest forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordDemoRequest(ev coremetrics.DemoRequestEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDemoRequest(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFleetSnapshot forwards payload summaries to sinks that record them.
func (m *MultiSink) RecordFleetSnapshot(ev coremetrics.FleetSnapshotEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.FleetSnapshotRecorder); ok {
			if err := rec.RecordFleetSnapshot(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordScalingOperation forwards scaling operations to sinks that record them.
func (m *MultiSink) RecordScalingOperation(ev coremetrics.ScalingEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ScalingRecorder); ok {
			if err := rec.RecordScalingOperation(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes the sinks that hold resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
