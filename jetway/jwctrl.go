// jetway/jwctrl.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import (
	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/scenery"
)

// Phase is one step of the jetway animation.
type Phase int

const (
	PhaseParked Phase = iota
	PhaseToAP
	PhaseAtAP
	PhaseToDoor
	PhaseDocked
	PhaseToPark // undock mirror of ToDoor/AtAP/ToAP
)

// TargetPose is the per-door setup result: the jetway-frame pose the
// controller drives toward, plus the rest-pose endpoint and alignment
// point used by TO_AP.
type TargetPose struct {
	Rot1, Rot2, Rot3, Extent float32
	ApX                      float32 // alignment point, door_x - kAlignDist
	ParkedX, ParkedZ         float32
	Y                        float32 // height offset, jw.height - door.y etc
}

// SetupForDoor computes a Candidate's target pose: the jetway-frame
// rotation/extent that places the cabin at the chosen door, the rest-pose
// endpoint, and the alignment point TO_AP drives to first.
func SetupForDoor(c *Candidate, planePsi float32, doorY float32) TargetPose {
	jw := c.Jetway
	doorX, doorZ := -jw.CabinLength, float32(0)
	y := float32(jw.Y) + jw.Height - doorY

	pose := InvertKinematics(doorX, doorZ, c.X, c.Z, planePsi, y, jw.CabinPos, jw.CabinLength, jw.WheelPos)

	parkRot := math.Radians(jw.InitialRot1 + planePsi - 90)
	radius := jw.InitialExtent + jw.CabinPos
	parkedX := c.X + radius*math.Cos(parkRot)
	parkedZ := c.Z + radius*math.Sin(parkRot)

	return TargetPose{
		Rot1: pose.Rot1, Rot2: pose.Rot2, Rot3: pose.Rot3, Extent: pose.Extent,
		ApX:     doorX - KAlignDist,
		ParkedX: parkedX, ParkedZ: parkedZ,
		Y: y,
	}
}

// JwCtrl drives one locked Jetway through its docking or undocking
// animation. At most one JwCtrl owns a given Jetway at a time (enforced
// by Jetway.Locked).
type JwCtrl struct {
	Jetway    *scenery.Jetway
	Target    TargetPose
	Phase     Phase
	Docking   bool // false => undocking (mirror phases, half TO_AP speed)
	StartTs   float64
	waitWBRot bool
	wbRot     float32

	// cabin position in the door frame, tracked across ticks as the
	// "moving point" TO_AP/TO_DOOR/TO_PARK drive.
	cabinX, cabinZ float32
}

// NewDockJwCtrl starts a docking animation for a locked jetway: phase
// PARKED -> TO_AP immediately, with the staggered start time the plane
// state machine computed when it transitioned CAN_DOCK -> DOCKING.
func NewDockJwCtrl(jw *scenery.Jetway, target TargetPose, startTs float64, doorX, doorZ float32) *JwCtrl {
	return &JwCtrl{
		Jetway: jw, Target: target, Phase: PhaseToAP, Docking: true, StartTs: startTs,
		cabinX: doorX, cabinZ: doorZ,
	}
}

// NewUndockJwCtrl starts the mirrored undocking animation.
func NewUndockJwCtrl(jw *scenery.Jetway, target TargetPose, startTs float64) *JwCtrl {
	return &JwCtrl{
		Jetway: jw, Target: target, Phase: PhaseToAP, Docking: false, StartTs: startTs,
		cabinX: target.ApX + KAlignDist, cabinZ: 0,
	}
}

// Tick advances the animation by dt seconds at simulator time now,
// reporting done once the jetway has reached DOCKED (docking) or PARKED
// (undocking). A phase that overruns KAnimTimeout snaps the jetway to its
// final pose (docked, or at rest and unlocked) and reports done rather
// than hanging.
func (c *JwCtrl) Tick(dt float32, now float64) (done bool) {
	jw := c.Jetway
	timedOut := now > c.StartTs+KAnimTimeout

	driveSpeed := float32(KDriveSpeed)
	if !c.Docking && c.Phase == PhaseToAP {
		driveSpeed *= 0.5
	}
	arrivalEps := math.Clamp(2*dt*driveSpeed, 0.1, 1e9)

	if timedOut && c.Phase != PhaseParked && c.Phase != PhaseDocked {
		if c.Docking {
			c.cabinX, c.cabinZ = -jw.CabinLength, 0
			jw.Rotate1, jw.Rotate2, jw.Rotate3, jw.Extent = c.Target.Rot1, c.Target.Rot2, c.Target.Rot3, c.Target.Extent
			jw.WarnLight = 0
			c.Phase = PhaseDocked
		} else {
			jw.ResetToRest()
			jw.Locked = false
			c.Phase = PhaseParked
		}
		return true
	}

	switch c.Phase {
	case PhaseToAP:
		if timedOut {
			c.cabinX, c.cabinZ = c.Target.ApX, 0
		} else {
			c.cabinX = moveToward(c.cabinX, c.Target.ApX, driveSpeed*dt)
			c.cabinZ = moveToward(c.cabinZ, 0, driveSpeed*dt)
		}

		wbRotTarget := math.Degrees(math.Atan2(0-c.cabinZ, c.Target.ApX-c.cabinX))
		if math.Abs(math.RA(wbRotTarget-c.wbRot)) > 2 {
			c.waitWBRot = true
			c.wbRot = moveTowardAngle(c.wbRot, wbRotTarget, KTurnSpeed*dt)
		} else {
			c.waitWBRot = false
		}

		if jw.Extent <= jw.MinExtent && c.wbRot < -90 {
			c.wbRot = -90
		}

		if !c.waitWBRot {
			if c.cabinX < c.Target.ApX-KAlignDist || c.cabinZ < -2 {
				jw.Rotate2 = moveToward(jw.Rotate2, c.rotTowardDoor(), KTurnSpeed*dt)
			}
			jw.Rotate3 = moveToward(jw.Rotate3, c.Target.Rot3, KTurnSpeed*dt)
		}
		c.updateExtentAndRot1()

		if timedOut || (math.Abs(c.cabinX-c.Target.ApX) <= arrivalEps && math.Abs(c.cabinZ) <= arrivalEps) {
			c.Phase = PhaseAtAP
			c.StartTs = now
		}
		return false

	case PhaseAtAP:
		jw.Rotate2 = moveToward(jw.Rotate2, c.Target.Rot2, KTurnSpeed*dt)
		jw.Rotate3 = moveToward(jw.Rotate3, c.Target.Rot3, KTurnSpeed*dt)
		c.wbRot = moveTowardAngle(c.wbRot, -math.Degrees(math.Atan2(c.cabinZ, c.Target.ApX-c.cabinX)), KTurnSpeed*dt)
		if timedOut || (jw.Rotate2 == c.Target.Rot2 && jw.Rotate3 == c.Target.Rot3) {
			if c.Docking {
				c.Phase = PhaseToDoor
			} else {
				c.Phase = PhaseToPark
			}
			c.StartTs = now
		}
		return false

	case PhaseToDoor:
		speed := driveSpeed
		if remaining := -jw.CabinLength - c.cabinX; math.Abs(remaining) < 0.8 {
			speed *= 0.1
		}
		if timedOut {
			c.cabinX = -jw.CabinLength
		} else {
			c.cabinX = moveToward(c.cabinX, -jw.CabinLength, speed*dt)
		}
		c.updateExtentAndRot1()
		if timedOut || math.Abs(c.cabinX-(-jw.CabinLength)) <= KArrivalEps {
			jw.Rotate1, jw.Rotate2, jw.Rotate3, jw.Extent = c.Target.Rot1, c.Target.Rot2, c.Target.Rot3, c.Target.Extent
			jw.WarnLight = 0
			c.Phase = PhaseDocked
			return true
		}
		return false

	case PhaseToPark:
		if timedOut {
			c.cabinX, c.cabinZ = c.Target.ParkedX, c.Target.ParkedZ
		} else {
			c.cabinX = moveToward(c.cabinX, c.Target.ParkedX, driveSpeed*dt)
			c.cabinZ = moveToward(c.cabinZ, c.Target.ParkedZ, driveSpeed*dt)
		}
		jw.Rotate2 = moveToward(jw.Rotate2, jw.InitialRot2, KTurnSpeed*dt)
		jw.Rotate3 = moveToward(jw.Rotate3, jw.InitialRot3, KTurnSpeed*dt)
		c.updateExtentAndRot1()

		if jw.Extent <= jw.MinExtent && c.wbRot > 90 {
			c.wbRot = 90
		}

		if timedOut || (math.Abs(c.cabinX-c.Target.ParkedX) <= arrivalEps && math.Abs(c.cabinZ-c.Target.ParkedZ) <= arrivalEps) {
			jw.ResetToRest()
			jw.Locked = false
			c.Phase = PhaseParked
			return true
		}
		return false
	}
	return true
}

// rotTowardDoor computes the cabin rotation that points the jetway at the
// target door from the controller's current cabin position.
func (c *JwCtrl) rotTowardDoor() float32 {
	return math.RA(math.Degrees(math.Atan2(-c.cabinZ, c.Target.ApX+KAlignDist-c.cabinX)) + c.Target.Rot2)
}

// updateExtentAndRot1 re-derives extent, rot1, and wheel position from the
// controller's current cabin point, keeping the jetway's mutable state
// consistent with cabinX/cabinZ every tick.
func (c *JwCtrl) updateExtentAndRot1() {
	jw := c.Jetway
	d := math.Clamp(math.Hypot(c.cabinX, c.cabinZ), 0, KCapZ)
	prevExtent := jw.Extent
	jw.Extent = math.Clamp(d-jw.CabinPos, jw.MinExtent, jw.MaxExtent)
	jw.Rotate1 = math.RA(math.Degrees(math.Atan2(c.cabinZ, c.cabinX)) + 90 - c.wbRot)

	ds := jw.Extent - prevExtent
	roll := WheelRollDelta(ds, jw.WheelDiameter, c.wbRot, jw.WheelRotateC)
	jw.WheelRotateC = math.RA(jw.WheelRotateC + roll)
	diff := WheelDifferential(roll, jw.WheelDistance, jw.WheelDiameter)
	jw.WheelRotateL = math.RA(jw.WheelRotateL + roll - diff)
	jw.WheelRotateR = math.RA(jw.WheelRotateR + roll + diff)
	jw.Wheels = math.Tan(math.Radians(jw.Rotate3)) * (jw.WheelPos + jw.Extent)
}
