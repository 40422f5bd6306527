// sched/sched_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sched

import "testing"

func TestSchedulerDispatchesDueSubsystemsOnly(t *testing.T) {
	var calls int
	s := New()
	s.Register("slow", SubsystemFunc(func(now float64) float64 {
		calls++
		return 10
	}))

	if d := s.Tick(0); d != 10 {
		t.Fatalf("Tick(0) = %v, want 10", d)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if d := s.Tick(1); d != 9 {
		t.Fatalf("Tick(1) = %v, want 9 (not yet due)", d)
	}
	if calls != 1 {
		t.Fatalf("expected subsystem not re-invoked before its due time, got %d calls", calls)
	}
	if d := s.Tick(10); d != 10 {
		t.Fatalf("Tick(10) = %v, want 10 (re-fired)", d)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls once due, got %d", calls)
	}
}

func TestSchedulerPropagatesRunNextFrame(t *testing.T) {
	s := New()
	s.Register("animating", SubsystemFunc(func(now float64) float64 { return RunNextFrame }))
	s.Register("idle", SubsystemFunc(func(now float64) float64 { return 5 }))
	if d := s.Tick(0); d != RunNextFrame {
		t.Fatalf("Tick = %v, want RunNextFrame when any subsystem wants immediate rerun", d)
	}
}
