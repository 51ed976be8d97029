package model

import "fmt"

// FleetConfig describes the simulated fleet the synthesizer operates on.
// Values are injected per service instance rather than read from globals so
// the engine stays pure and testable.
type FleetConfig struct {
	// TotalVehicles is the full fleet size, V2G capable or not.
	TotalVehicles int
	// V2GEnabled is the number of vehicles equipped for grid injection.
	V2GEnabled int
	// BaselineActive is the historical reference count of simultaneously
	// discharging vehicles. Scaling factors are expressed against it.
	BaselineActive int
}

// Validate checks the fleet invariants. The active vehicle count computed by
// the engine never exceeds V2GEnabled, which in turn must fit the fleet.
func (c FleetConfig) Validate() error {
	if c.TotalVehicles <= 0 {
		return fmt.Errorf("total vehicles must be positive")
	}
	if c.V2GEnabled <= 0 || c.V2GEnabled > c.TotalVehicles {
		return fmt.Errorf("v2g enabled count %d out of range [1,%d]", c.V2GEnabled, c.TotalVehicles)
	}
	if c.BaselineActive <= 0 {
		return fmt.Errorf("baseline active count must be positive")
	}
	return nil
}
