// jetway/search_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import (
	"testing"

	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/scenery"
)

func newTestRegistry(t *testing.T) *scenery.Registry {
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
	return reg
}

func placeJetway(reg *scenery.Registry, x, z float64, door scenery.DoorLocation) *scenery.Jetway {
	jw := reg.NewZeroConfigJetway(1, x, 0, z, -90, nil, -1)
	jw.Door = door
	jw.InitialRot1 = -90
	jw.InitialRot2, jw.InitialRot3, jw.InitialExtent = 0, 0, 0
	jw.ResetToRest()
	return jw
}

// TestFindNearestJetwayFiltersAndSorts places a single reachable jetway
// and checks it survives the candidate search as one locked candidate
// assigned to its LF1 door.
func TestFindNearestJetwayFiltersAndSorts(t *testing.T) {
	reg := newTestRegistry(t)
	placeJetway(reg, -15, 25, scenery.DoorLF1)

	doors := []DoorOffset{{X: -2, Z: 5}}
	cands := FindNearestJetway(reg, 0, 0, 0, 0, 0, doors)
	if len(cands) != 1 {
		t.Fatalf("len(cands) = %d, want 1", len(cands))
	}
	c := cands[0]
	if c.DoorIdx != 0 {
		t.Errorf("DoorIdx = %d, want 0 (jetway built for LF1)", c.DoorIdx)
	}
	if !c.Jetway.Locked {
		t.Errorf("expected the surviving candidate's jetway to be locked")
	}
}

// TestFindNearestJetwayTooFarIsExcluded checks a jetway well outside the
// search radius never becomes a candidate.
func TestFindNearestJetwayTooFarIsExcluded(t *testing.T) {
	reg := newTestRegistry(t)
	placeJetway(reg, -15, 500, scenery.DoorLF1)

	cands := FindNearestJetway(reg, 0, 0, 0, 0, 0, []DoorOffset{{X: -2, Z: 5}})
	if len(cands) != 0 {
		t.Fatalf("len(cands) = %d, want 0 for a jetway outside the search radius", len(cands))
	}
}

// TestFindNearestJetwayResolvesCollisionByDoorIndex places two jetways,
// one built for each of two doors, positioned so their fully-extended
// cabins cross. Only the door-0 (LF1) jetway should survive; the LF2
// jetway must be released (Locked == false), matching the two-jetway
// collision scenario.
func TestFindNearestJetwayResolvesCollisionByDoorIndex(t *testing.T) {
	reg := newTestRegistry(t)
	jwLF1 := placeJetway(reg, -15, 25, scenery.DoorLF1)
	jwLF2 := placeJetway(reg, -15, 15, scenery.DoorLF2)

	doors := []DoorOffset{{X: -2, Z: 5}, {X: -2, Z: 15}}
	cands := FindNearestJetway(reg, 0, 0, 0, 0, 0, doors)

	if len(cands) != 1 {
		t.Fatalf("len(cands) = %d, want 1 (one of the colliding pair survives)", len(cands))
	}
	if cands[0].Jetway != jwLF1 {
		t.Errorf("surviving candidate = %v, want the door-0 (LF1) jetway", cands[0].Jetway.Name)
	}
	if !jwLF1.Locked {
		t.Errorf("expected the surviving LF1 jetway to remain locked")
	}
	if jwLF2.Locked {
		t.Errorf("expected the colliding LF2 jetway to be released (Locked == false)")
	}
}

func TestResolveDoorConflictsKeepsFirstPerDoor(t *testing.T) {
	a := &Candidate{Jetway: &scenery.Jetway{Locked: true}, DoorIdx: 0}
	b := &Candidate{Jetway: &scenery.Jetway{Locked: true}, DoorIdx: 0}
	out := resolveDoorConflicts([]*Candidate{a, b})
	if len(out) != 1 || out[0] != a {
		t.Fatalf("expected only the first candidate for a door to survive")
	}
	if b.Jetway.Locked {
		t.Errorf("expected the dropped duplicate's jetway to be unlocked")
	}
}
