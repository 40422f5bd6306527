// jetway/search.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/scenery"
)

// DoorOffset is one aircraft door's position relative to the plane's
// reference point, in the plane's own body frame (+x to the aircraft's
// right, +z forward).
type DoorOffset struct {
	X, Z float32
}

// Candidate is a tentatively-selected jetway controller from
// FindNearestJetway: the jetway, which door it was evaluated against, its
// position relative to the average of the plane's doors, and whether it
// only passed the softened over-extension check.
type Candidate struct {
	Jetway    *scenery.Jetway
	DoorIdx   int
	X, Z      float32 // jetway base position in the plane frame, relative to the average door
	SoftMatch bool
}

// toPlaneFrame rotates a world/local-frame delta (jx-px, jz-pz) into the
// plane's body frame given its heading psi, using the same rotate-by
// -heading convention as scenery.Stand.ToStandFrame.
func toPlaneFrame(jx, jz, px, pz float64, psi float32) (x, z float32) {
	dx := float32(jx - px)
	dz := float32(jz - pz)
	s, c := math.Sin(math.Radians(psi)), math.Cos(math.Radians(psi))
	x = dx*c - dz*s
	z = dx*s + dz*c
	return x, z
}

// FindNearestJetway is the candidate search: it builds the plane's
// average door position, walks every Jetway near (planeLat, planeLon)
// plus the whole zero-config pool, and filters out jetways that are
// invisible, locked, on the wrong side, pointing away, too far, or
// kinematically unreachable (with a softened allowance for a small
// extent overrun). Each surviving jetway is assigned to the door its own
// Door field names (scenery.DoorLF1/LF2/LU1, indexed into doors in that
// order), so two jetways built for the same door never both survive.
// Accepted candidates are sorted (height, z, -x), locked, and finally
// pruned so no two candidates whose fully-extended cabins would collide
// both survive: resolveCollisions walks them in ascending door-index
// order and drops (unlocking) whichever of a colliding pair has the
// higher door index.
func FindNearestJetway(reg *scenery.Registry, planeLat, planeLon float32, planeX, planeZ float64, planePsi float32, doors []DoorOffset) []*Candidate {
	var avgX, avgZ float32
	for _, d := range doors {
		avgX += d.X
		avgZ += d.Z
	}
	if n := len(doors); n > 0 {
		avgX /= float32(n)
		avgZ /= float32(n)
	}

	var out []*Candidate
	for _, jw := range reg.AllJetways(planeLat, planeLon) {
		if jw.Bad || jw.Locked {
			continue
		}
		if jw.ObjRefGen != reg.RefGen() {
			continue // invisible: not seen by the host this generation
		}

		x, z := toPlaneFrame(jw.X, jw.Z, planeX, planeZ, planePsi)
		x -= avgX
		z -= avgZ

		if x > 1 {
			continue // on the right: plane frame is +x to the aircraft's right
		}
		if ra := math.RA(planePsi + jw.InitialRot1); ra < -130 || ra > 20 {
			continue // pointing away
		}
		if x < -80 || math.Abs(z) > 80 {
			continue // too far
		}

		doorIdx := int(jw.Door)
		if doorIdx < 0 || doorIdx >= len(doors) {
			doorIdx = 0
		}
		door := doors[doorIdx]
		pose := InvertKinematics(x-door.X, z-door.Z, float32(jw.X)-avgX, float32(jw.Z)-avgZ, planePsi, float32(jw.Y), jw.CabinPos, jw.CabinLength, jw.WheelPos)

		soft := false
		switch {
		case pose.Rot1 < jw.MinRot1 || pose.Rot1 > jw.MaxRot1:
			continue
		case pose.Rot2 < jw.MinRot2 || pose.Rot2 > jw.MaxRot2:
			continue
		case pose.Extent < jw.MinExtent || pose.Extent > jw.MaxExtent:
			over := pose.Extent - jw.MaxExtent
			if over > 0 && over <= 8 {
				soft = true
			} else {
				continue
			}
		}

		if jw.Name == "" {
			jw.Name = synthesizeZeroConfigName(jw, len(out))
		}

		jw.Locked = true
		out = append(out, &Candidate{Jetway: jw, DoorIdx: doorIdx, X: x, Z: z, SoftMatch: soft})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Jetway.Height != b.Jetway.Height {
			return a.Jetway.Height < b.Jetway.Height
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X > b.X // larger x (further right, since plane frame +x is right) sorts first
	})

	out = resolveDoorConflicts(out)
	out = resolveCollisions(out, doors)
	return out
}

// resolveDoorConflicts keeps at most one candidate per DoorIdx: when two
// jetways were built for the same door, the one earlier in out's existing
// (height, z, -x) order is kept and the other is released.
func resolveDoorConflicts(in []*Candidate) []*Candidate {
	seen := make(map[int]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if seen[c.DoorIdx] {
			c.Jetway.Locked = false
			continue
		}
		seen[c.DoorIdx] = true
		out = append(out, c)
	}
	return out
}

// resolveCollisions drops whichever of a colliding pair of candidates has
// the higher door index: walking in ascending DoorIdx order and testing
// each new candidate's fully-extended cabin against every already-accepted
// one reproduces "the jetway whose door index is 0 is selected" for the
// two-jetway collision case, and generalizes to any number of doors.
func resolveCollisions(in []*Candidate, doors []DoorOffset) []*Candidate {
	ordered := append([]*Candidate(nil), in...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].DoorIdx < ordered[j].DoorIdx })

	var accepted []*Candidate
	for _, c := range ordered {
		base := [2]float32{c.X, c.Z}
		ext := [2]float32{doors[c.DoorIdx].X, doors[c.DoorIdx].Z}

		collides := false
		for _, a := range accepted {
			aBase := [2]float32{a.X, a.Z}
			aExt := [2]float32{doors[a.DoorIdx].X, doors[a.DoorIdx].Z}
			if CollisionCheckExtended(aBase, aExt, base, ext) {
				collides = true
				break
			}
		}
		if collides {
			c.Jetway.Locked = false
			continue
		}
		accepted = append(accepted, c)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		a, b := accepted[i], accepted[j]
		if a.Jetway.Height != b.Jetway.Height {
			return a.Jetway.Height < b.Jetway.Height
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X > b.X
	})
	return accepted
}

// synthesizeZeroConfigName builds a stable display name for a zero-config
// jetway with no manifest name. scenery.Registry.NewZeroConfigJetway
// already stashes the nearest stand's id as Name at creation (or leaves it
// empty if there was no nearby stand); here it's truncated at the first
// space or 10 characters and suffixed with an ordinal.
func synthesizeZeroConfigName(jw *scenery.Jetway, ordinal int) string {
	base := jw.Name
	if base == "" {
		base = "JW"
	}
	if i := strings.IndexByte(base, ' '); i >= 0 {
		base = base[:i]
	}
	if len(base) > 10 {
		base = base[:10]
	}
	return fmt.Sprintf("%s-%d", base, ordinal+1)
}
