package opslog

import (
	"sort"
	"sync"
	"time"
)

// Operation is one recorded scaling operation.
type Operation struct {
	OperationID      string    `json:"operation_id"`
	RequestedTarget  int       `json:"requested_target"`
	AchievedTarget   int       `json:"achieved_target"`
	Success          bool      `json:"success"`
	OptimizationMode string    `json:"optimization_mode"`
	Timestamp        time.Time `json:"timestamp"`
}

// Filter restricts the operations returned by List.
type Filter struct {
	Since   time.Time
	Success *bool
}

// Store keeps a history of scaling operations.
type Store interface {
	Record(Operation)
	List(Filter) []Operation
}

// MemoryStore is a bounded in-memory Store. Once the capacity is reached the
// oldest operation is evicted.
type MemoryStore struct {
	mu  sync.RWMutex
	ops []Operation
	cap int
}

// NewMemoryStore creates a store keeping at most capacity operations.
// A non-positive capacity defaults to 256.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryStore{cap: capacity}
}

func (s *MemoryStore) Record(op Operation) {
	s.mu.Lock()
	s.ops = append(s.ops, op)
	if len(s.ops) > s.cap {
		s.ops = s.ops[len(s.ops)-s.cap:]
	}
	s.mu.Unlock()
}

func (s *MemoryStore) List(f Filter) []Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Operation, 0, len(s.ops))
	for _, op := range s.ops {
		if !f.Since.IsZero() && op.Timestamp.Before(f.Since) {
			continue
		}
		if f.Success != nil && op.Success != *f.Success {
			continue
		}
		res = append(res, op)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Timestamp.Equal(res[j].Timestamp) {
			return res[i].OperationID < res[j].OperationID
		}
		return res[i].Timestamp.Before(res[j].Timestamp)
	})
	return res
}
