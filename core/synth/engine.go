package synth

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/evfleet/demometrics/core/model"
)

const (
	baseParticipationRate = 0.38
	maxParticipationRate  = 0.95

	highDemandThreshold = 1.5
	highDemandBonus     = 0.15
	midDemandThreshold  = 1.2
	midDemandBonus      = 0.08

	peakStartHour = 16
	peakEndHour   = 20
	peakHourBonus = 0.1

	dischargeHoursPerDay = 8
	billingDaysPerMonth  = 30
)

// Request carries the parameters of a demo metrics request.
type Request struct {
	DemoType string `json:"demo_type"`
	// ScaleTarget overrides the demand-derived participation rate. A value
	// of zero or less means no target was supplied.
	ScaleTarget      int            `json:"scale_target"`
	OptimizeGrid     bool           `json:"optimize_grid"`
	OptimizationMode string         `json:"optimization_mode"`
	CustomParams     map[string]any `json:"custom_params"`
}

// Engine synthesizes fleet V2G payloads. Randomness and time are injected so
// outputs are reproducible under test.
type Engine struct {
	fleet model.FleetConfig
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an Engine for the given fleet. A zero seed falls back to the
// current time. A nil clock falls back to time.Now.
func New(fleet model.FleetConfig, seed int64, now func() time.Time) (*Engine, error) {
	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("fleet config: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		fleet: fleet,
		now:   now,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Fleet returns the fleet configuration the engine was built with.
func (e *Engine) Fleet() model.FleetConfig { return e.fleet }

// gridDemand draws the per-request demand factor in [0.8, 1.7). The range
// covers the nominal, elevated and high bonus branches of participationRate.
func (e *Engine) gridDemand() float64 {
	return 0.8 + e.rng.Float64()*0.9
}

// participationRate derives the fraction of V2G-enabled vehicles discharging.
// An explicit scale target replaces the demand-adjusted rate entirely; the
// peak-hour bonus applies on either path.
func (e *Engine) participationRate(gridDemand float64, scaleTarget int, at time.Time) float64 {
	rate := baseParticipationRate
	if gridDemand > highDemandThreshold {
		rate += highDemandBonus
	} else if gridDemand > midDemandThreshold {
		rate += midDemandBonus
	}
	if scaleTarget > 0 {
		rate = math.Min(float64(scaleTarget)/float64(e.fleet.V2GEnabled), maxParticipationRate)
	}
	if h := at.Hour(); h >= peakStartHour && h <= peakEndHour {
		rate += peakHourBonus
	}
	return rate
}

// activeVehicles converts a participation rate into a vehicle count, clamped
// to [0, V2GEnabled].
func (e *Engine) activeVehicles(rate float64) int {
	n := int(math.Floor(float64(e.fleet.V2GEnabled) * rate))
	if n < 0 {
		n = 0
	}
	if n > e.fleet.V2GEnabled {
		n = e.fleet.V2GEnabled
	}
	return n
}

// scalingFactor expresses an active vehicle count against the historical
// baseline. A fleet at exactly the baseline yields 1.0.
func (e *Engine) scalingFactor(active int) float64 {
	return float64(active) / float64(e.fleet.BaselineActive)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
