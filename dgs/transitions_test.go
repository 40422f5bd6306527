// dgs/transitions_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dgs

import (
	"testing"

	"github.com/samkit/scenerymgr/host"
)

// TestTickStaysEngagedUntilCaptured checks that ARRIVAL doesn't cascade all
// the way to TRACK while the aircraft is still outside the capture gate.
func TestTickStaysEngagedUntilCaptured(t *testing.T) {
	d := &DGS{State: StateArrival}
	tr := Track{NwX: 0, NwZ: 200}
	d.Tick(0, tr, true, false, false, nil, host.LocalPoint{}, host.LocalPoint{}, 0)
	if d.State != StateEngaged {
		t.Fatalf("State = %v, want StateEngaged while outside the capture gate", d.State)
	}
}

// TestTickEntersTrackOnceCaptured checks the capture gate admits TRACK once
// the aircraft is within kCapZ/kCapA of the stand.
func TestTickEntersTrackOnceCaptured(t *testing.T) {
	d := &DGS{State: StateEngaged}
	tr := Track{NwX: 0, NwZ: 50, MwX: 0, MwZ: 50}
	d.Tick(0, tr, true, false, false, nil, host.LocalPoint{}, host.LocalPoint{}, 0)
	if d.State != StateTrack {
		t.Fatalf("State = %v, want StateTrack once within the capture gate", d.State)
	}
}

// TestTickFallsBackToEngagedWhenCaptureIsLost checks TRACK gives back up
// to ENGAGED once the aircraft moves back outside the capture gate,
// rather than relying on an ungrounded distance threshold.
func TestTickFallsBackToEngagedWhenCaptureIsLost(t *testing.T) {
	d := &DGS{State: StateTrack}
	tr := Track{NwX: 0, NwZ: 150, MwX: 0, MwZ: 150} // distance 149.5 > kCapZ
	d.Tick(0, tr, true, false, false, nil, host.LocalPoint{}, host.LocalPoint{}, 0)
	if d.State != StateEngaged {
		t.Fatalf("State = %v, want StateEngaged once capture is lost", d.State)
	}
}

// TestTickEngagedGoesDoneWhenBeaconOff mirrors the reference DGS's ENGAGED
// handling: with the beacon already off, there's nothing left to track.
func TestTickEngagedGoesDoneWhenBeaconOff(t *testing.T) {
	d := &DGS{State: StateEngaged}
	tr := Track{NwX: 0, NwZ: 50}
	g := d.Tick(0, tr, false, false, false, nil, host.LocalPoint{}, host.LocalPoint{}, 0)
	if d.State != StateDone {
		t.Fatalf("State = %v, want StateDone", d.State)
	}
	if g.Status != StatusParked {
		t.Errorf("Status = %v, want StatusParked", g.Status)
	}
}
