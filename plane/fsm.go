// plane/fsm.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plane

import (
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/jetway"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/scenery"
)

// State is one node of the plane docking state machine.
type State int

const (
	StateDisabled State = iota
	StateIdle
	StateParked
	StateSelectJws
	StateCanDock
	StateDocking
	StateDocked
	StateUndocking
	StateCantDock
)

const (
	idlePollDelay   = 0.5
	teleportEpsM    = 1.0
	staggerInterval = 5.0
)

// FSM drives one Plane through the docking state machine, owning the
// jetway controllers it has acquired.
type FSM struct {
	Plane Plane
	State State

	parkedX, parkedZ float64
	parkedRefGen     uint32

	nearestJws []*jetway.Candidate
	activeJws  []*jetway.JwCtrl

	lg *log.Logger
}

// NewFSM constructs an idle FSM driving p.
func NewFSM(p Plane, lg *log.Logger) *FSM {
	return &FSM{Plane: p, State: StateIdle, lg: lg}
}

// Tick advances the FSM by one scheduler invocation and returns the delay
// (seconds) before it should run again: 0.5 s while idle, the animation
// cadence while animating, or the -1 "run me next frame" sentinel on a
// just-completed transition.
func (f *FSM) Tick(reg *scenery.Registry, h host.Host, now, dt float64) float64 {
	obs := f.Plane.Update(now)

	if f.State != StateIdle && f.checkTeleportation(obs) {
		f.resetOwnedJetways()
		f.nearestJws = nil
		f.activeJws = nil
		f.State = StateIdle
		return -1
	}

	switch f.State {
	case StateDisabled:
		return idlePollDelay

	case StateIdle:
		if obs.OnGround && !obs.BeaconOn {
			f.parkedX, f.parkedZ, f.parkedRefGen = obs.X, obs.Z, obs.RefGen
			f.Plane.DockRequested() // drain stale requests
			f.State = StateParked
			return -1
		}
		return idlePollDelay

	case StateParked:
		f.nearestJws = jetway.FindNearestJetway(reg, obs.Lat, obs.Lon, obs.X, obs.Z, obs.Psi, obs.Doors)
		if len(f.nearestJws) > 0 {
			f.State = StateSelectJws
		} else {
			f.State = StateCantDock
		}
		return -1

	case StateSelectJws:
		if obs.BeaconOn {
			f.releaseAll(f.nearestJws)
			f.State = StateIdle
			return -1
		}
		if !f.Plane.AutoMode() {
			return idlePollDelay
		}
		selected := f.selectJws(obs)
		if len(selected) == 0 {
			f.State = StateCantDock
		} else {
			f.activeJws = selected
			f.State = StateCanDock
		}
		return -1

	case StateCanDock:
		if obs.BeaconOn {
			f.State = StateIdle
			return -1
		}
		dock, _, toggle := f.Plane.DockRequested()
		if dock || toggle {
			f.startDocking(now, obs)
			f.State = StateDocking
			return -1
		}
		return idlePollDelay

	case StateDocking:
		return f.tickAnimating(now, float32(dt), func() { f.onDocked() })

	case StateDocked:
		if !obs.OnGround {
			f.State = StateIdle
			return -1
		}
		_, undock, toggle := f.Plane.DockRequested()
		if obs.BeaconOn || undock || toggle {
			f.startUndocking(now, obs)
			f.State = StateUndocking
			return -1
		}
		return idlePollDelay

	case StateUndocking:
		return f.tickAnimating(now, float32(dt), func() {
			f.activeJws = nil
			f.State = StateIdle
		})

	case StateCantDock:
		if !obs.OnGround || obs.BeaconOn {
			f.State = StateIdle
			return -1
		}
		return idlePollDelay
	}
	return idlePollDelay
}

func (f *FSM) checkTeleportation(obs Observation) bool {
	if obs.RefGen != f.parkedRefGen {
		return true
	}
	return math.Abs(float32(obs.X-f.parkedX)) > teleportEpsM || math.Abs(float32(obs.Z-f.parkedZ)) > teleportEpsM
}

func (f *FSM) resetOwnedJetways() {
	for _, c := range f.activeJws {
		c.Jetway.ResetToRest()
		c.Jetway.Locked = false
	}
}

func (f *FSM) releaseAll(cands []*jetway.Candidate) {
	for _, c := range cands {
		c.Jetway.Locked = false
	}
}

// selectJws performs the CAN_DOCK selection pass: one jetway per door and
// collision resolution between jetways whose fully extended cabins would
// cross are already done by FindNearestJetway, so this computes each
// candidate's target pose with SetupForDoor, applies the LF1 door's slight
// nose-cone slant, and builds a JwCtrl per surviving candidate.
func (f *FSM) selectJws(obs Observation) []*jetway.JwCtrl {
	var ctrls []*jetway.JwCtrl
	for _, c := range f.nearestJws {
		doorY := 0.0
		if c.DoorIdx < len(obs.Doors) {
			// door Y offset isn't carried on DoorOffset (2D only); treat as
			// level with the plane reference, matching most aircraft.
		}
		target := jetway.SetupForDoor(c, obs.Psi, float32(doorY))
		if c.DoorIdx == 0 {
			target.Rot2 += 3 // LF1 nose-cone slant
		}
		ctrl := jetway.NewDockJwCtrl(c.Jetway, target, 0, c.X, c.Z)
		ctrls = append(ctrls, ctrl)
	}
	// release locks on anything not selected: currently all candidates
	// that reached here are selected, so this is a no-op placeholder for
	// the manual-selection path a UI would drive.
	return ctrls
}

func (f *FSM) startDocking(now float64, obs Observation) {
	n := len(f.activeJws)
	for k, c := range f.activeJws {
		c.StartTs = now + staggerInterval*float64(n-1-k)
		c.Jetway.WarnLight = 1
	}
	_ = obs
}

func (f *FSM) startUndocking(now float64, obs Observation) {
	n := len(f.activeJws)
	for k, c := range f.activeJws {
		c.Phase = jetway.PhaseToAP
		c.Docking = false
		c.StartTs = now + staggerInterval*float64(k)
	}
	_ = n
	_ = obs
}

func (f *FSM) tickAnimating(now float64, dt float32, onAllDone func()) float64 {
	allDone := true
	for _, c := range f.activeJws {
		if !c.Tick(dt, now) {
			allDone = false
		}
	}
	if allDone {
		onAllDone()
		return -1
	}
	return 0 // host frame cadence
}

func (f *FSM) onDocked() {
	for _, c := range f.activeJws {
		c.Jetway.WarnLight = 0
	}
	f.State = StateDocked
}

// JetwaysDocked reports how many active controllers have reached DOCKED,
// for the opensam/jetway/number and opensam/jetway/door/status datarefs.
func (f *FSM) JetwaysDocked() int {
	if f.State != StateDocked {
		return 0
	}
	return len(f.activeJws)
}
