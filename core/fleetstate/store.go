package fleetstate

import (
	"sync"
	"time"

	"github.com/evfleet/demometrics/core/model"
)

// Snapshot is the latest synthesized fleet summary with its timestamp.
type Snapshot struct {
	Summary   model.FleetSummary `json:"fleet_summary"`
	Timestamp time.Time          `json:"timestamp"`
}

// Store holds the most recent fleet snapshot for the read-side API.
type Store struct {
	mu   sync.RWMutex
	last Snapshot
	set  bool
}

func NewStore() *Store { return &Store{} }

// Set replaces the stored snapshot.
func (s *Store) Set(sn Snapshot) {
	s.mu.Lock()
	s.last = sn
	s.set = true
	s.mu.Unlock()
}

// Latest returns the stored snapshot. The second return value is false when
// no payload has been synthesized yet.
func (s *Store) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.set
}
