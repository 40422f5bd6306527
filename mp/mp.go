// mp/mp.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package mp is the multiplayer orchestrator: it holds an
// optional active MpAdapter, refreshes remote planes from it each tick,
// and delegates each one to its own plane.FSM. Concrete adapters
// (xPilot/TGXP/LiveTraffic) are explicitly out of scope; this package
// only defines the contract and a reference/test adapter that exercises
// it with synthetic traffic.
package mp

import (
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/jetway"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/plane"
	"github.com/samkit/scenerymgr/scenery"
)

// remotePlane adapts one RemoteState into a plane.Plane, satisfying the
// same interface MyPlane does so the FSM never special-cases multiplayer
// traffic.
type remotePlane struct {
	key   string
	state RemoteState
	doors []jetway.DoorOffset
}

func (r *remotePlane) Update(now float64) plane.Observation {
	return plane.Observation{
		Lat: r.state.Lat, Lon: r.state.Lon,
		X: r.state.X, Z: r.state.Z, Psi: r.state.Psi,
		OnGround: r.state.OnGround, BeaconOn: r.state.BeaconOn,
		Doors: r.doors,
	}
}

func (r *remotePlane) AutoMode() bool { return true }

func (r *remotePlane) DockRequested() (dock, undock, toggle bool) { return false, false, false }

func (r *remotePlane) WithAlertSound() bool { return false }

// Orchestrator owns the active adapter (if any) and one plane.FSM per
// remote aircraft currently visible, keyed by RemoteState.Key.
type Orchestrator struct {
	Adapter MpAdapter
	planes  map[string]*remoteEntry
	lg      *log.Logger
}

type remoteEntry struct {
	plane *remotePlane
	fsm   *plane.FSM
}

// New constructs an Orchestrator with no adapter attached; SetAdapter (or
// direct field assignment) enables multiplayer once a host-specific
// adapter is available.
func New(lg *log.Logger) *Orchestrator {
	return &Orchestrator{planes: make(map[string]*remoteEntry), lg: lg}
}

// SetAdapter attaches or detaches (nil) the active MpAdapter. Detaching
// drops every tracked remote plane, releasing any jetways they held.
func (o *Orchestrator) SetAdapter(a MpAdapter) {
	o.Adapter = a
	if a == nil {
		o.planes = make(map[string]*remoteEntry)
	}
}

// Tick refreshes the adapter (if any) and advances every remote plane's
// FSM. Multiplayer is meant to run after the user plane and DGS machines
// in the scheduler's own tick, and ticking each remote FSM here is
// exactly that delegation.
func (o *Orchestrator) Tick(reg *scenery.Registry, h host.Host, now, dt float64) {
	if o.Adapter == nil {
		return
	}
	seen := make(map[string]bool, len(o.planes))
	for _, rs := range o.Adapter.Refresh(now) {
		seen[rs.Key] = true
		e, ok := o.planes[rs.Key]
		if !ok {
			rp := &remotePlane{key: rs.Key, state: rs}
			e = &remoteEntry{plane: rp, fsm: plane.NewFSM(rp, o.lg)}
			o.planes[rs.Key] = e
		}
		e.plane.state = rs
		e.fsm.Tick(reg, h, now, dt)
	}
	for k, e := range o.planes {
		if !seen[k] {
			delete(o.planes, k)
		}
		_ = e
	}
}
