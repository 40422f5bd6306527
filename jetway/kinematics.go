// jetway/kinematics.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package jetway implements the draw-time accessor that maps a host draw
// call to its Jetway, the per-plane jetway controller (JwCtrl) that drives
// one jetway through its docking or undocking animation, and the inverse
// tunnel kinematics both are built on.
package jetway

import "github.com/samkit/scenerymgr/math"

// Motion-phase constants.
const (
	KDriveSpeed  = 1.0 // m/s, full speed
	KTurnSpeed   = 10.0 // deg/s
	KHeightSpeed = 0.1 // m/s
	KAnimTimeout = 50.0 // s
	KAlignDist   = 1.0 // m, align-abeam offset
	KArrivalEps  = 0.05 // m, final arrival tolerance

	// KCapZ is the hard cap, in metres, on the cabin point's distance from
	// the door-frame origin that updateExtentAndRot1 derives the extent from.
	KCapZ = 140.0
)

// Pose is the inverted tunnel kinematics result for one target cabin
// endpoint: the jetway-frame rotation/extent that places the cabin there.
type Pose struct {
	Rot1, Rot2, Rot3, Extent, Wheels float32
}

// InvertKinematics solves for the jetway-frame pose that puts the cabin
// endpoint at (cx, cz) in the door frame, given the jetway's base (x, z),
// its current yaw psi, a vertical offset y between jetway deck and door
// sill, the wheelbase's drive-arm length cabinPos, and cabinLength/wheelPos
// for the pitch and wheel terms.
func InvertKinematics(cx, cz, x, z, psi, y, cabinPos, cabinLength, wheelPos float32) Pose {
	d := math.Hypot(cx-x, cz-z)
	rot1D := math.Atan2(cz-z, cx-x)
	rot1 := math.RA(math.Degrees(rot1D) + 90 - psi)
	extent := d - cabinPos
	rot2 := math.RA(90 - psi - rot1)
	netLength := d + cabinLength*math.Cos(math.Radians(rot2))
	rot3 := -math.Degrees(math.SafeAsin(y / netLength))
	wheels := math.Tan(math.Radians(rot3)) * (wheelPos + extent)
	return Pose{Rot1: rot1, Rot2: rot2, Rot3: rot3, Extent: extent, Wheels: wheels}
}

// WheelRollDelta returns the incremental wheel-spin angle (degrees) for
// having driven ds meters with the wheel base pointed at wbRot, given the
// previous wheel-center spin wheelRotateC: the roll magnitude is
// (ds/wheelDiameter) in radians converted to degrees, negated when driving
// in reverse relative to the wheel base's own heading.
func WheelRollDelta(ds, wheelDiameter, wbRot, wheelRotateC float32) float32 {
	d := math.Degrees(ds / wheelDiameter)
	if math.Abs(math.RA(wbRot-wheelRotateC)) > 90 {
		d = -d
	}
	return d
}

// WheelDifferential returns the extra left/right wheel spin (degrees)
// induced by turning through dRot degrees with the given track width
// (wheelDistance) and wheelDiameter: ±(dRot · wheelDistance/wheelDiameter).
func WheelDifferential(dRot, wheelDistance, wheelDiameter float32) float32 {
	return dRot * wheelDistance / wheelDiameter
}

// moveToward steps cur toward target by at most maxDelta, without
// overshooting: the rate-limited approach every animation phase uses to
// drive extent, rotation, and height values toward their targets.
func moveToward(cur, target, maxDelta float32) float32 {
	maxDelta = math.Abs(maxDelta)
	d := target - cur
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d > 0 {
		return cur + maxDelta
	}
	return cur - maxDelta
}

// moveTowardAngle is moveToward for a signed relative angle, taking the
// shorter way around.
func moveTowardAngle(cur, target, maxDelta float32) float32 {
	d := math.RA(target - cur)
	maxDelta = math.Abs(maxDelta)
	if math.Abs(d) <= maxDelta {
		return math.RA(cur + d)
	}
	if d > 0 {
		return math.RA(cur + maxDelta)
	}
	return math.RA(cur - maxDelta)
}
