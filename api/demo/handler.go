package demo

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	coremetrics "github.com/evfleet/demometrics/core/metrics"
	coremon "github.com/evfleet/demometrics/core/monitoring"
	"github.com/evfleet/demometrics/core/synth"
	"github.com/evfleet/demometrics/infra/logger"
	"github.com/evfleet/demometrics/internal/eventbus"
)

// errorBody mirrors the error shape the dashboard expects.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Handler serves demo metrics requests on /api/demo/data.
type Handler struct {
	eng      *synth.Engine
	sink     coremetrics.MetricsSink
	snapBus  *eventbus.Bus[coremetrics.FleetSnapshotEvent]
	scaleBus *eventbus.Bus[coremetrics.ScalingEvent]
	mon      coremon.Monitor
	log      logger.Logger
}

// NewHandler creates the demo data handler. Nil buses, sink and monitor are
// replaced with no-ops.
func NewHandler(eng *synth.Engine, sink coremetrics.MetricsSink,
	snapBus *eventbus.Bus[coremetrics.FleetSnapshotEvent],
	scaleBus *eventbus.Bus[coremetrics.ScalingEvent],
	mon coremon.Monitor, log logger.Logger) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if mon == nil {
		mon = coremon.NopMonitor{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{eng: eng, sink: sink, snapBus: snapBus, scaleBus: scaleBus, mon: mon, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, start)
	case http.MethodPost:
		h.handlePost(w, r, start)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	q := r.URL.Query()
	demoType := q.Get("demo_type")
	if demoType != "v2g" {
		snap := h.eng.Snapshot()
		h.record(demoType, r.Method, http.StatusOK, snap.FleetMetrics.OnlineVehicles, start)
		h.writeJSON(w, http.StatusOK, snap)
		return
	}

	req := synth.Request{DemoType: demoType, OptimizeGrid: q.Get("optimize_grid") == "true"}
	if s := q.Get("scale_target"); s != "" {
		// Unparseable targets are ignored rather than rejected, matching
		// the behavior the dashboard relies on.
		if n, err := strconv.Atoi(s); err == nil {
			req.ScaleTarget = n
		}
	}
	payload, err := h.eng.Generate(req)
	if err != nil {
		h.fail(w, r, demoType, start, err)
		return
	}
	if h.snapBus != nil {
		h.snapBus.Publish(coremetrics.FleetSnapshotEvent{
			Summary:           payload.FleetSummary,
			TotalDischargeKW:  payload.GridIntegration.TotalDischargeKW,
			RevenuePerHour:    payload.Revenue.RevenuePerHour,
			ParticipationRate: payload.ScalingInfo.ParticipationRate,
			Time:              payload.Timestamp,
		})
	}
	h.record(demoType, r.Method, http.StatusOK, payload.FleetSummary.ActiveV2G, start)
	h.writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req synth.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, "invalid", start, err)
		return
	}
	if req.DemoType != "v2g_scaling" {
		h.fail(w, r, req.DemoType, start, errUnsupported(req.DemoType))
		return
	}
	res, err := h.eng.ScaleFleet(req)
	if err != nil {
		h.fail(w, r, req.DemoType, start, err)
		return
	}
	if h.scaleBus != nil {
		h.scaleBus.Publish(coremetrics.ScalingEvent{
			OperationID:     res.OperationID,
			RequestedTarget: res.RequestedTarget,
			AchievedTarget:  res.AchievedTarget,
			Success:         res.ScalingSuccess,
			Mode:            res.OptimizationMode,
			Time:            res.Timestamp,
		})
	}
	h.record(req.DemoType, r.Method, http.StatusOK, res.AchievedTarget, start)
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, demoType string, start time.Time, err error) {
	h.log.Errorf("demo request failed: %v", err)
	h.mon.CaptureException(err, map[string]string{"endpoint": "demo_data", "demo_type": demoType})
	h.record(demoType, r.Method, http.StatusInternalServerError, 0, start)
	h.writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "demo data generation failed",
		Details: err.Error(),
	})
}

func (h *Handler) record(demoType, method string, status, active int, start time.Time) {
	ev := coremetrics.DemoRequestEvent{
		DemoType:       demoType,
		Method:         method,
		Status:         status,
		ActiveVehicles: active,
		Duration:       time.Since(start),
		Time:           start,
	}
	if err := h.sink.RecordDemoRequest(ev); err != nil {
		h.log.Warnf("record demo request: %v", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

type unsupportedError string

func errUnsupported(demoType string) error { return unsupportedError(demoType) }

func (e unsupportedError) Error() string {
	return "unsupported demo_type: " + string(e)
}
