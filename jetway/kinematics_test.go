// jetway/kinematics_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import (
	"testing"

	"github.com/samkit/scenerymgr/math"
)

func TestInvertKinematicsLevel(t *testing.T) {
	// Cabin endpoint straight ahead of the jetway base, no height offset:
	// rot3 (pitch) should come out at zero and extent should equal the
	// straight-line distance minus cabinPos.
	pose := InvertKinematics(10, 0, 0, 0, 0, 0, 2, 3, 1)
	if math.Abs(pose.Rot3) > 0.01 {
		t.Errorf("Rot3 = %v, want ~0 for a level run", pose.Rot3)
	}
	if math.Abs(pose.Extent-8) > 0.01 {
		t.Errorf("Extent = %v, want 8 (10 - cabinPos 2)", pose.Extent)
	}
}

func TestInvertKinematicsPitchesForHeightOffset(t *testing.T) {
	level := InvertKinematics(10, 0, 0, 0, 0, 0, 2, 3, 1)
	pitched := InvertKinematics(10, 0, 0, 0, 0, 2, 2, 3, 1)
	if pitched.Rot3 >= level.Rot3 {
		t.Errorf("expected a positive height offset to produce a more negative pitch; level=%v pitched=%v", level.Rot3, pitched.Rot3)
	}
}

func TestWheelRollDeltaReversesOnOppositeHeading(t *testing.T) {
	fwd := WheelRollDelta(1, 0.5, 0, 0)
	rev := WheelRollDelta(1, 0.5, 180, 0)
	if fwd <= 0 || rev >= 0 {
		t.Errorf("expected forward/reverse rolls to have opposite sign: fwd=%v rev=%v", fwd, rev)
	}
}

func TestCollisionCheckCrossingSegments(t *testing.T) {
	if !CollisionCheck([2]float32{0, 0}, [2]float32{1, 1}, [2]float32{0, 1}, [2]float32{1, 0}) {
		t.Errorf("expected crossing segments to report a collision")
	}
}

func TestCollisionCheckParallelSegments(t *testing.T) {
	if CollisionCheck([2]float32{0, 0}, [2]float32{1, 0}, [2]float32{0, 1}, [2]float32{1, 1}) {
		t.Errorf("expected parallel segments to report no collision")
	}
}

func TestMoveTowardClampsAtTarget(t *testing.T) {
	if v := moveToward(0, 10, 3); v != 3 {
		t.Errorf("moveToward = %v, want 3", v)
	}
	if v := moveToward(9, 10, 3); v != 10 {
		t.Errorf("moveToward = %v, want 10 (reached target)", v)
	}
}
