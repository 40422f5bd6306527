// dgs/dgs.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dgs implements the docking-guidance-system state machine that
// drives one stand's VDGS/Marshaller display: nearest-stand search,
// stand association, tracking guidance, and the departure-mode scrolling
// display.
package dgs

import (
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/scenery"
)

// State is one node of the DGS state machine.
type State int

const (
	StateDisabled State = iota
	StateInactive
	StateDeparture
	StateBoarding
	StateArrival
	StateEngaged
	StateTrack
	StateGood
	StateBad
	StateParked
	StateChocks
	StateDone
)

// Status is the numeric value exposed on the opensam/dgs/status dataref.
type Status int

const (
	StatusInactive Status = 0
	StatusTracking Status = 1
	StatusAtStop   Status = 2
	StatusParked   Status = 3
	StatusTooFar   Status = 4
	StatusChocks   Status = 6
)

const (
	standSearchInterval = 2.0 // s
	standHeadingCone    = 90.0 // deg, heading prune
	forwardConeDeg      = 60.0
	minBehindZ          = -4.0 // m
	doneToInactiveDelay = 3.0 // s
	kAziCrossover       = 6.0 // m
	kCrZHalf            = 6.0 // m, track=3 switch threshold
)

// DGS drives one VDGS/Marshaller instance.
type DGS struct {
	State State

	IsMarshaller bool
	UserPlane    bool

	activeStand   *scenery.Stand
	activeIdx     int
	lastSearchAt  float64
	doneEnteredAt float64
	prevSinWave   float32

	marshaller host.InstancedObject
	stairs     host.InstancedObject

	// scroll state for departure-mode text
	scrollText  string
	scrollR1    float32

	lg *log.Logger
}

// New constructs an inactive DGS.
func New(isMarshaller, userPlane bool, lg *log.Logger) *DGS {
	return &DGS{State: StateInactive, IsMarshaller: isMarshaller, UserPlane: userPlane, lg: lg}
}

// OnGroundChanged handles the activation transition: false->true switches
// to ARRIVAL; going off-ground or an explicit inactivate destroys any
// placed instance and returns to INACTIVE.
func (d *DGS) OnGroundChanged(onGround bool, placer host.ObjectPlacer) {
	if onGround {
		if d.State == StateInactive || d.State == StateDisabled {
			d.State = StateArrival
		}
		return
	}
	d.deactivate()
}

func (d *DGS) deactivate() {
	d.destroyInstances()
	d.State = StateInactive
	d.activeStand = nil
}

func (d *DGS) destroyInstances() {
	if d.marshaller != nil {
		d.marshaller.Remove()
		d.marshaller = nil
	}
	if d.stairs != nil {
		d.stairs.Remove()
		d.stairs = nil
	}
}

// FindNearestStand runs the nearest-stand search: at most every 2 s, it
// bbox-prunes by Scenery then heading-prunes stands, rejects stands the
// aircraft is behind or outside the forward cone, and scores the
// remainder by hypot(4·nw_x, nw_z), picking the minimum.
func (d *DGS) FindNearestStand(reg *scenery.Registry, planeLat, planeLon, planeHdgt float32, planeX, planeZ float64, now float64) {
	if now-d.lastSearchAt < standSearchInterval {
		return
	}
	d.lastSearchAt = now

	var best *scenery.Stand
	var bestScore float32 = -1
	bestIdx := -1
	for _, sc := range reg.SceneriesNear(planeLat, planeLon) {
		for i, st := range sc.Stands {
			if math.Abs(math.RA(planeHdgt-st.Hdgt)) > standHeadingCone {
				continue
			}
			nwX, nwZ := st.ToStandFrame(planeX, planeZ)
			if nwZ < minBehindZ {
				continue
			}
			bearing := math.Degrees(math.Atan2(nwX, nwZ))
			if math.Abs(bearing) > forwardConeDeg {
				continue
			}
			score := math.Hypot(4*nwX, nwZ)
			if bestScore < 0 || score < bestScore {
				bestScore, best, bestIdx = score, st, i
			}
		}
	}
	d.activeStand, d.activeIdx = best, bestIdx
}

// AssociateObject applies the stand-association rule: an
// object becomes associated to the active stand iff its position and
// heading (or anti-heading, for SAM1-compatible VDGSes) fall within the
// documented box. Returns whether this object won the association: a
// qualifying object replaces the stand's recorded one only if its z is
// greater, or equal with a smaller |x|.
func (d *DGS) AssociateObject(now float64, objX, objZ float64, objHdgt float32) bool {
	if d.activeStand == nil {
		return false
	}
	sx, sz := d.activeStand.ToStandFrame(objX, objZ)
	if math.Abs(sx) > 10 || sz < -80 || sz > -5 {
		return false
	}
	dh := math.RA(objHdgt - d.activeStand.Hdgt)
	antiDh := math.RA(objHdgt - d.activeStand.Hdgt - 180)
	if math.Abs(dh) > 10 && math.Abs(antiDh) > 10 {
		return false
	}
	if st := d.activeStand; st.DGSAssoc {
		z, ax := float64(sz), float64(math.Abs(sx))
		if z < st.DGSZ || (z == st.DGSZ && ax > float64(math.Abs(float32(st.DGSX)))) {
			return false
		}
	}
	d.activeStand.DGSAssoc = true
	d.activeStand.DGSX, d.activeStand.DGSZ = float64(sx), float64(sz)
	d.activeStand.DGSAssocAt = now
	return true
}
