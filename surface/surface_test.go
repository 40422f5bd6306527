// surface/surface_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package surface

import "testing"

func TestScalarRoundTrip(t *testing.T) {
	s := New()
	s.RegisterScalar("sam/jetway/rotate1", func() float64 { return 42 })
	v, ok := s.ReadScalar("sam/jetway/rotate1")
	if !ok || v != 42 {
		t.Errorf("ReadScalar = %v, %v", v, ok)
	}
	if _, ok := s.ReadScalar("nope"); ok {
		t.Errorf("expected a miss for an unregistered dataref")
	}
}

func TestCommandDispatch(t *testing.T) {
	s := New()
	var gotPhase = -1
	s.RegisterCommand("openSAM/dock_jwy", func(phase int) { gotPhase = phase })
	if !s.Dispatch("openSAM/dock_jwy", 0) {
		t.Fatalf("expected dispatch to find the command")
	}
	if gotPhase != 0 {
		t.Errorf("phase = %d, want 0", gotPhase)
	}
	if s.Dispatch("openSAM/nonexistent", 0) {
		t.Errorf("expected dispatch to report false for an unregistered command")
	}
}

func TestWriteRejectsNonWritable(t *testing.T) {
	s := New()
	s.RegisterScalar("sam/jetway/rotate1", func() float64 { return 0 })
	if err := s.Write("sam/jetway/rotate1", 1); err == nil {
		t.Errorf("expected an error writing a read-only dataref")
	}
}
