package opslog

import (
	"fmt"
	"testing"
	"time"
)

func op(id string, target int, success bool, at time.Time) Operation {
	return Operation{
		OperationID:     id,
		RequestedTarget: target,
		AchievedTarget:  target,
		Success:         success,
		Timestamp:       at,
	}
}

func TestMemoryStore_RecordAndList(t *testing.T) {
	s := NewMemoryStore(10)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	s.Record(op("b", 50, true, base.Add(time.Minute)))
	s.Record(op("a", 120, false, base))
	s.Record(op("c", 30, true, base.Add(2*time.Minute)))

	all := s.List(Filter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 got %d", len(all))
	}
	if all[0].OperationID != "a" || all[2].OperationID != "c" {
		t.Fatalf("unexpected order %#v", all)
	}
}

func TestMemoryStore_FilterSince(t *testing.T) {
	s := NewMemoryStore(10)
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	s.Record(op("old", 10, true, base))
	s.Record(op("new", 20, true, base.Add(time.Hour)))

	got := s.List(Filter{Since: base.Add(30 * time.Minute)})
	if len(got) != 1 || got[0].OperationID != "new" {
		t.Fatalf("since filter bad %#v", got)
	}
}

func TestMemoryStore_FilterSuccess(t *testing.T) {
	s := NewMemoryStore(10)
	now := time.Now()
	s.Record(op("ok", 10, true, now))
	s.Record(op("fail", 200, false, now.Add(time.Second)))

	f := false
	got := s.List(Filter{Success: &f})
	if len(got) != 1 || got[0].OperationID != "fail" {
		t.Fatalf("success filter bad %#v", got)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	s := NewMemoryStore(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.Record(op(fmt.Sprintf("op%d", i), i, true, now.Add(time.Duration(i)*time.Second)))
	}
	got := s.List(Filter{})
	if len(got) != 3 {
		t.Fatalf("expected 3 after eviction got %d", len(got))
	}
	if got[0].OperationID != "op2" {
		t.Fatalf("expected oldest evicted, first is %s", got[0].OperationID)
	}
}
