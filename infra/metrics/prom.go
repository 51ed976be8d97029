package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
)

// PromSink records demo request activity in Prometheus metrics.
type PromSink struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	active    prometheus.Gauge
	discharge prometheus.Gauge
	scalings  *prometheus.CounterVec
}

// NewPromSink registers demo metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "demo_requests_total",
		Help: "Total number of demo metrics requests",
	}, []string{"demo_type", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "demo_synthesis_duration_seconds",
		Help:    "Time spent synthesizing a demo payload",
		Buckets: prometheus.DefBuckets,
	}, []string{"demo_type"})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_active_v2g_vehicles",
		Help: "Active V2G vehicles in the last synthesized payload",
	})
	discharge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_total_discharge_kw",
		Help: "Total discharge power in the last synthesized payload",
	})
	scalings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scaling_operations_total",
		Help: "Total number of fleet scaling operations",
	}, []string{"success"})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(active); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			active = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(discharge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			discharge = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scalings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scalings = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, latency: latency, active: active, discharge: discharge, scalings: scalings}, nil
}

// RecordDemoRequest increments the request counter and observes latency.
func (s *PromSink) RecordDemoRequest(ev coremetrics.DemoRequestEvent) error {
	s.requests.WithLabelValues(ev.DemoType, ev.Method, strconv.Itoa(ev.Status)).Inc()
	s.latency.WithLabelValues(ev.DemoType).Observe(ev.Duration.Seconds())
	return nil
}

// RecordFleetSnapshot updates the fleet gauges.
func (s *PromSink) RecordFleetSnapshot(ev coremetrics.FleetSnapshotEvent) error {
	s.active.Set(float64(ev.Summary.ActiveV2G))
	s.discharge.Set(ev.TotalDischargeKW)
	return nil
}

// RecordScalingOperation increments the scaling counter.
func (s *PromSink) RecordScalingOperation(ev coremetrics.ScalingEvent) error {
	s.scalings.WithLabelValues(strconv.FormatBool(ev.Success)).Inc()
	return nil
}
