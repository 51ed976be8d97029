package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apidemo "github.com/evfleet/demometrics/api/demo"
	apifleet "github.com/evfleet/demometrics/api/fleet"
	apiscaling "github.com/evfleet/demometrics/api/scaling"
	"github.com/evfleet/demometrics/config"
	"github.com/evfleet/demometrics/core/feed"
	"github.com/evfleet/demometrics/core/fleetstate"
	coremetrics "github.com/evfleet/demometrics/core/metrics"
	coremon "github.com/evfleet/demometrics/core/monitoring"
	"github.com/evfleet/demometrics/core/opslog"
	"github.com/evfleet/demometrics/core/synth"
	"github.com/evfleet/demometrics/infra/logger"
	"github.com/evfleet/demometrics/infra/metrics"
	"github.com/evfleet/demometrics/infra/monitoring"
	"github.com/evfleet/demometrics/infra/mqtt"
	"github.com/evfleet/demometrics/internal/eventbus"
)

// Service wires the synthesizer engine, the API handlers, the recorder
// pipeline and the metric sinks.
type Service struct {
	Engine *synth.Engine

	cfg      *config.Config
	log      logger.Logger
	mon      coremon.Monitor
	sink     coremetrics.MetricsSink
	snapBus  *eventbus.Bus[coremetrics.FleetSnapshotEvent]
	scaleBus *eventbus.Bus[coremetrics.ScalingEvent]
	snapCh   <-chan coremetrics.FleetSnapshotEvent
	scaleCh  <-chan coremetrics.ScalingEvent
	ops      *opslog.MemoryStore
	state    *fleetstate.Store
	feedPub  feed.Publisher
	srv      *http.Server
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry monitor: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	eng, err := synth.New(cfg.Fleet.Model(), cfg.Fleet.Seed, nil)
	if err != nil {
		return nil, fmt.Errorf("synth engine: %w", err)
	}

	var pub feed.Publisher = feed.NopPublisher{}
	if cfg.Feed.Enabled {
		p, err := mqtt.NewPahoPublisher(cfg.Feed)
		if err != nil {
			return nil, fmt.Errorf("feed publisher: %w", err)
		}
		pub = p
	}

	svc := &Service{
		Engine:   eng,
		cfg:      cfg,
		log:      logg,
		mon:      mon,
		sink:     sink,
		snapBus:  eventbus.New[coremetrics.FleetSnapshotEvent](),
		scaleBus: eventbus.New[coremetrics.ScalingEvent](),
		ops:      opslog.NewMemoryStore(cfg.Fleet.HistoryCapacity),
		state:    fleetstate.NewStore(),
		feedPub:  pub,
	}
	svc.snapCh = svc.snapBus.Subscribe()
	svc.scaleCh = svc.scaleBus.Subscribe()

	mux := http.NewServeMux()
	mux.Handle("/api/demo/data", apidemo.NewHandler(eng, sink, svc.snapBus, svc.scaleBus, mon, logger.New("demo-api")))
	mux.Handle("/api/fleet/summary", apifleet.NewSummaryHandler(svc.state))
	mux.Handle("/api/scaling/operations", apiscaling.NewOperationsHandler(svc.ops))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	svc.srv = &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	return svc, nil
}

// Run starts the recorder pipeline and the HTTP servers, blocking until the
// context is cancelled or the API server fails.
func (s *Service) Run(ctx context.Context) error {
	go s.consumeSnapshots()
	go s.consumeScalings()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		timeout := time.Duration(s.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("demo metrics API listening on %s", s.cfg.Server.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// consumeSnapshots feeds synthesized payload summaries into the state store,
// the metric sinks and the live feed.
func (s *Service) consumeSnapshots() {
	for ev := range s.snapCh {
		sn := fleetstate.Snapshot{Summary: ev.Summary, Timestamp: ev.Time}
		s.state.Set(sn)
		if rec, ok := s.sink.(coremetrics.FleetSnapshotRecorder); ok {
			if err := rec.RecordFleetSnapshot(ev); err != nil {
				s.log.Warnf("record snapshot: %v", err)
			}
		}
		if err := s.feedPub.PublishSnapshot(sn); err != nil {
			s.log.Warnf("publish snapshot: %v", err)
		}
	}
}

// consumeScalings feeds scaling operations into the history store and sinks.
func (s *Service) consumeScalings() {
	for ev := range s.scaleCh {
		s.ops.Record(opslog.Operation{
			OperationID:      ev.OperationID,
			RequestedTarget:  ev.RequestedTarget,
			AchievedTarget:   ev.AchievedTarget,
			Success:          ev.Success,
			OptimizationMode: ev.Mode,
			Timestamp:        ev.Time,
		})
		if rec, ok := s.sink.(coremetrics.ScalingRecorder); ok {
			if err := rec.RecordScalingOperation(ev); err != nil {
				s.log.Warnf("record scaling: %v", err)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.snapBus.Close()
	s.scaleBus.Close()
	s.feedPub.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	s.mon.Flush(2 * time.Second)
	return nil
}
