// math/math_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestRARoundTrip(t *testing.T) {
	for a := float32(-720); a <= 720; a += 17.5 {
		r := RA(a)
		if r <= -180 || r > 180 {
			t.Errorf("RA(%v) = %v out of (-180,180]", a, r)
		}
		if rr := RA(r); Abs(rr-r) > 1e-3 {
			t.Errorf("RA(RA(%v)) = %v, want %v", a, rr, r)
		}
	}
}

func TestRAKnownValues(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{180, 180},
		{181, -179},
		{-181, 179},
		{360, 0},
		{-360, 0},
		{540, 180},
	}
	for _, tc := range tests {
		if got := RA(tc.in); Abs(got-tc.want) > 1e-3 {
			t.Errorf("RA(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtentInsideWrapLongitude(t *testing.T) {
	e := Extent2D{P0: [2]float32{170, -10}, P1: [2]float32{-170 + 360, 10}}
	// Straddling the antimeridian: lon=179 and lon=-179 (i.e. 181) should
	// both be inside; lon=0 should not.
	if !e.InsideWrapLongitude(179, 0) {
		t.Errorf("expected 179E inside antimeridian-straddling bbox")
	}
	if !e.InsideWrapLongitude(-179, 0) {
		t.Errorf("expected 179W (-179) inside antimeridian-straddling bbox")
	}
	if e.InsideWrapLongitude(0, 0) {
		t.Errorf("expected 0E outside antimeridian-straddling bbox")
	}
}

func TestSegmentIntersectST(t *testing.T) {
	// Two segments crossing at (0.5, 0.5).
	p1, p2 := [2]float32{0, 0}, [2]float32{1, 1}
	p3, p4 := [2]float32{0, 1}, [2]float32{1, 0}
	s, tt, ok := SegmentIntersectST(p1, p2, p3, p4)
	if !ok {
		t.Fatalf("expected intersection")
	}
	if Abs(s-0.5) > 1e-3 || Abs(tt-0.5) > 1e-3 {
		t.Errorf("s=%v t=%v, want 0.5,0.5", s, tt)
	}

	// Parallel segments: no intersection regardless of overlap.
	q1, q2 := [2]float32{0, 0}, [2]float32{1, 0}
	q3, q4 := [2]float32{0, 1}, [2]float32{1, 1}
	if _, _, ok := SegmentIntersectST(q1, q2, q3, q4); ok {
		t.Errorf("parallel segments should not report an intersection")
	}
}
