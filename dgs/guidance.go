// dgs/guidance.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dgs

import "github.com/samkit/scenerymgr/math"

// Guidance is one tick's worth of DGS tracking output.
type Guidance struct {
	Status              Status
	Distance            float32 // m, rounded to 0.5
	Distance0           int     // integer metres when < 10
	Distance01          int     // even tenths when < 3 m
	XTrack              float32 // m, clamped ±4, rounded to 0.5
	Track               int     // 0 off, 1 lead-in, 2 azimuth, 3 full
	LR                  int     // -1 left, 0 none, 1 right
	Slow                bool
}

// Track holds the nose/main-wheel positions (stand frame) an airframe
// presents to the DGS each tick.
type Track struct {
	NwX, NwZ float32
	MwX, MwZ float32
	GroundSpeed float32 // m/s
	Heading     float32 // plane heading relative to the stand centerline, degrees
}

const (
	kAziCrossoverM = 6.0
	kLeadInSwitch  = kCrZHalf // track becomes 3 inside this

	// kCapZ/kCapA are the ENGAGED<->TRACK capture gate: TRACK is only
	// entered within kCapZ metres and kCapA degrees of nose-wheel azimuth,
	// and given back up the moment either is exceeded again.
	kCapZ    = 100.0
	kCapA    = 15.0
	kGoodZ   = 0.5  // m, stop-position nose tolerance, also the distance origin
	kDgsDist = 20.0 // m, nominal DGS-to-stand distance used for azimuth geometry
)

// Compute derives the guidance outputs from a Track: the nose/main-wheel
// blend for azimuth, the lr turn indicator's far/close regimes, and the
// ground-speed-dependent slow flag.
func Compute(tr Track) Guidance {
	a := math.Clamp((tr.NwZ-6)/20, 0, 1)
	refX := (1-a)*tr.NwX + a*tr.MwX
	refZ := (1-a)*tr.NwZ + a*tr.MwZ

	g := Guidance{}
	g.Distance = math.Clamp(roundHalf(tr.NwZ), 0, 1e6)
	if tr.NwZ < 10 {
		g.Distance0 = int(tr.NwZ + 0.5)
	}
	if tr.NwZ < 3 {
		g.Distance01 = int(tr.NwZ*10+0.5) / 2 * 2
	}
	g.XTrack = roundHalf(math.Clamp(tr.NwX, -4, 4))

	switch {
	case refZ <= kLeadInSwitch:
		g.Track = 3
	case refZ <= 20:
		g.Track = 2
	default:
		g.Track = 1
	}

	if refZ > kAziCrossoverM {
		required := math.Degrees(math.Atan2(-refX, 0.3*refZ))
		dHdgt := required - tr.Heading // degrees still to turn to reach centerline
		switch {
		case dHdgt > 1.5:
			g.LR = 1
		case dHdgt < -1.5:
			g.LR = -1
		}
	} else {
		switch {
		case refX > 0.25:
			g.LR = -1
		case refX < -0.25:
			g.LR = 1
		}
	}

	switch {
	case tr.NwZ > 20:
		g.Slow = tr.GroundSpeed > 4
	case tr.NwZ > 10:
		g.Slow = tr.GroundSpeed > 3
	default:
		g.Slow = tr.GroundSpeed > 2
	}

	if tr.NwZ >= 0 {
		g.Status = StatusTracking
	}

	if atStop(tr) {
		g.Status = StatusAtStop
	}

	return g
}

// atStop is the stop-position predicate: |mw_x| <= 2m and
// nw_z in [-0.5, +0.2].
func atStop(tr Track) bool {
	return math.Abs(tr.MwX) <= 2 && tr.NwZ >= -0.5 && tr.NwZ <= 0.2
}

// PastStop reports the BAD transition predicate: the aircraft has rolled
// past the stop line.
func PastStop(tr Track) bool {
	return tr.NwZ < -0.5
}

// captureDistance is the capture gate's distance metric: nose-wheel
// distance to the stop line.
func captureDistance(tr Track) float32 {
	return tr.NwZ - kGoodZ
}

// azimuthNW is the capture gate's nose-wheel-only azimuth, distinct from
// Compute's nose/main-wheel-blended azimuth used for the lr indicator.
func azimuthNW(tr Track) float32 {
	if tr.NwZ <= 0 {
		return 0
	}
	return math.Degrees(math.Atan2(tr.NwX, tr.NwZ+0.5*kDgsDist))
}

// captured reports whether tr is within the ENGAGED->TRACK capture gate.
func captured(tr Track) bool {
	return captureDistance(tr) <= kCapZ && math.Abs(azimuthNW(tr)) <= kCapA
}

func roundHalf(v float32) float32 {
	return float32(int(v*2+sign(v)*0.5)) / 2
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
