package feed

import "github.com/evfleet/demometrics/core/fleetstate"

// Publisher pushes synthesized fleet snapshots to external consumers, such
// as dashboards subscribed to the live feed.
type Publisher interface {
	PublishSnapshot(sn fleetstate.Snapshot) error
	Close()
}

// NopPublisher discards all snapshots.
type NopPublisher struct{}

func (NopPublisher) PublishSnapshot(fleetstate.Snapshot) error { return nil }
func (NopPublisher) Close()                                    {}
