// plane/fsm_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plane

import (
	"testing"

	"github.com/samkit/scenerymgr/jetway"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/scenery"
)

// fakePlane is a scripted Plane: the test sets its fields directly between
// Tick calls, the way a real host would update them from live datarefs.
type fakePlane struct {
	obs      Observation
	auto     bool
	dock     bool
	undock   bool
	toggle   bool
}

func (p *fakePlane) Update(now float64) Observation { return p.obs }
func (p *fakePlane) AutoMode() bool                 { return p.auto }
func (p *fakePlane) DockRequested() (dock, undock, toggle bool) {
	dock, undock, toggle = p.dock, p.undock, p.toggle
	p.dock, p.undock, p.toggle = false, false, false
	return
}
func (p *fakePlane) WithAlertSound() bool { return true }

func newTestRegistryWithJetway(t *testing.T) (*scenery.Registry, *scenery.Jetway) {
	lg := log.New("error", t.TempDir(), 0)
	reg := scenery.NewRegistry(lg)
	reg.LibJws[1] = &scenery.LibJw{
		ID: 1,
		Jetway: scenery.Jetway{
			CabinPos: 2, CabinLength: 6, WheelPos: 1,
			WheelDiameter: 0.5, WheelDistance: 2, Height: 4,
			MinRot1: -180, MaxRot1: 180,
			MinRot2: -180, MaxRot2: 180,
			MinRot3: -90, MaxRot3: 90,
			MinExtent: 0, MaxExtent: 100,
			MinWheels: -90, MaxWheels: 90,
		},
	}
	jw := reg.NewZeroConfigJetway(1, -15, 0, 25, -90, nil, -1)
	jw.Door = scenery.DoorLF1
	jw.InitialRot1 = -90
	jw.InitialRot2, jw.InitialRot3, jw.InitialExtent = 0, 0, 0
	jw.ResetToRest()
	return reg, jw
}

// TestFSMDocksAndUndocks drives a parked, auto-mode plane with one reachable
// jetway through the full IDLE -> PARKED -> SELECT_JWS -> CAN_DOCK ->
// DOCKING -> DOCKED -> UNDOCKING -> IDLE cycle.
func TestFSMDocksAndUndocks(t *testing.T) {
	reg, jw := newTestRegistryWithJetway(t)
	lg := log.New("error", t.TempDir(), 0)

	p := &fakePlane{
		auto: true,
		obs: Observation{
			X: 0, Z: 0, Psi: 0,
			OnGround: true, BeaconOn: false,
			Doors: []jetway.DoorOffset{{X: -2, Z: 5}},
		},
	}
	f := NewFSM(p, lg)

	now := 0.0
	const dt = 0.1
	step := func() { f.Tick(reg, nil, now, dt); now += dt }

	step() // IDLE -> PARKED
	if f.State != StateParked {
		t.Fatalf("State = %v, want StateParked", f.State)
	}
	step() // PARKED -> SELECT_JWS
	if f.State != StateSelectJws {
		t.Fatalf("State = %v, want StateSelectJws", f.State)
	}
	step() // SELECT_JWS -> CAN_DOCK
	if f.State != StateCanDock {
		t.Fatalf("State = %v, want StateCanDock", f.State)
	}
	if len(f.activeJws) != 1 {
		t.Fatalf("len(activeJws) = %d, want 1", len(f.activeJws))
	}

	p.dock = true
	step() // CAN_DOCK -> DOCKING
	if f.State != StateDocking {
		t.Fatalf("State = %v, want StateDocking", f.State)
	}

	for i := 0; i < 3000 && f.State == StateDocking; i++ {
		step()
	}
	if f.State != StateDocked {
		t.Fatalf("State = %v, want StateDocked after the docking animation budget", f.State)
	}
	if f.JetwaysDocked() != 1 {
		t.Errorf("JetwaysDocked() = %d, want 1", f.JetwaysDocked())
	}

	p.undock = true
	step() // DOCKED -> UNDOCKING
	if f.State != StateUndocking {
		t.Fatalf("State = %v, want StateUndocking", f.State)
	}

	for i := 0; i < 3000 && f.State == StateUndocking; i++ {
		step()
	}
	if f.State != StateIdle {
		t.Fatalf("State = %v, want StateIdle after the undocking animation budget", f.State)
	}
	if jw.Locked {
		t.Errorf("expected the jetway to be released after undocking")
	}
}

// TestFSMCantDockWithNoJetways checks a plane with no reachable jetway
// lands in CAN'T_DOCK instead of hanging in PARKED.
func TestFSMCantDockWithNoJetways(t *testing.T) {
	lg := log.New("error", t.TempDir(), 0)
	reg := scenery.NewRegistry(lg)

	p := &fakePlane{
		auto: true,
		obs: Observation{
			OnGround: true,
			Doors:    []jetway.DoorOffset{{X: -2, Z: 5}},
		},
	}
	f := NewFSM(p, lg)

	f.Tick(reg, nil, 0, 0.1)   // IDLE -> PARKED
	f.Tick(reg, nil, 0.1, 0.1) // PARKED -> CAN'T_DOCK (no candidates)
	if f.State != StateCantDock {
		t.Fatalf("State = %v, want StateCantDock", f.State)
	}
}

// TestFSMTeleportationResetsToIdle checks a large unexplained position jump
// while waiting in CAN_DOCK drops the FSM back to IDLE and releases its
// jetways.
func TestFSMTeleportationResetsToIdle(t *testing.T) {
	reg, jw := newTestRegistryWithJetway(t)
	lg := log.New("error", t.TempDir(), 0)

	p := &fakePlane{
		auto: true,
		obs: Observation{
			X: 0, Z: 0, Psi: 0,
			OnGround: true,
			Doors:    []jetway.DoorOffset{{X: -2, Z: 5}},
		},
	}
	f := NewFSM(p, lg)
	now := 0.0
	step := func() { f.Tick(reg, nil, now, 0.1); now += 0.1 }

	step() // IDLE -> PARKED
	step() // PARKED -> SELECT_JWS
	step() // SELECT_JWS -> CAN_DOCK
	if f.State != StateCanDock {
		t.Fatalf("State = %v, want StateCanDock", f.State)
	}

	p.obs.X = 5000 // teleport
	step()
	if f.State != StateIdle {
		t.Fatalf("State = %v, want StateIdle after teleportation", f.State)
	}
	if jw.Locked {
		t.Errorf("expected the jetway to be released after teleportation reset")
	}
}
