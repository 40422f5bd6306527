// dgs/transitions.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dgs

import (
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/math"
)

// Tick advances the DGS state machine from ARRIVAL onward, given this
// tick's Track and a few host-observed flags. It returns the Guidance to
// expose on the dataref surface: full guidance in TRACK/GOOD/BAD, only a
// Status of StatusParked or StatusChocks in PARKED, CHOCKS and DONE (and
// when ENGAGED ends with the beacon off), and a zero Guidance otherwise.
func (d *DGS) Tick(now float64, tr Track, beaconOn, parkBrakeSet, chocksAvailable bool, placer host.ObjectPlacer, marshallerPos, stairsPos host.LocalPoint, psi float32) Guidance {
	switch d.State {
	case StateArrival:
		d.State = StateEngaged
		fallthrough
	case StateEngaged:
		if !beaconOn {
			d.State = StateDone
			d.doneEnteredAt = now
			return Guidance{Status: StatusParked}
		}
		if captured(tr) {
			d.State = StateTrack
		}
		if d.State != StateTrack {
			return Guidance{}
		}
		fallthrough
	case StateTrack:
		g := Compute(tr)
		d.placeMarshaller(placer, marshallerPos, stairsPos, psi)
		switch {
		case atStop(tr):
			d.State = StateGood
		case PastStop(tr):
			d.State = StateBad
		case !captured(tr):
			d.State = StateEngaged // moving away from the current gate
		}
		return g

	case StateGood:
		d.placeMarshaller(placer, marshallerPos, stairsPos, psi)
		if parkBrakeSet || !beaconOn {
			d.State = StateParked
		}
		return Compute(tr)

	case StateBad:
		d.placeMarshaller(placer, marshallerPos, stairsPos, psi)
		return Compute(tr)

	case StateParked:
		d.placeMarshaller(placer, marshallerPos, stairsPos, psi)
		d.State = StateDone
		d.doneEnteredAt = now
		if chocksAvailable && d.UserPlane {
			d.State = StateChocks
		}
		return Guidance{Status: StatusParked}

	case StateChocks:
		if now-d.doneEnteredAt > 1 {
			d.State = StateDone
		}
		return Guidance{Status: StatusChocks}

	case StateDone:
		d.destroyInstances()
		if now-d.doneEnteredAt > doneToInactiveDelay {
			d.State = StateInactive
		}
		return Guidance{Status: StatusParked}
	}
	return Guidance{}
}

// ShouldAutoDock reports whether DONE should synthesise a dock_jwy
// request on the user plane, given the caller's own opt-out flag.
func (d *DGS) ShouldAutoDock(now float64, optedOut bool) bool {
	return d.UserPlane && d.State == StateDone && !optedOut && now-d.doneEnteredAt >= doneToInactiveDelay
}

// placeMarshaller instances the Marshaller model and a stairs model at
// stairsPos the first time the DGS enters a marshalling-eligible state.
// The stairs model is placed every time; the ground level beneath the
// Marshaller is not probed.
func (d *DGS) placeMarshaller(placer host.ObjectPlacer, pos, stairsPos host.LocalPoint, psi float32) {
	if !d.IsMarshaller || d.marshaller != nil {
		return
	}
	d.marshaller = placer.PlaceInstance("marshaller", pos, psi)
	d.stairs = placer.PlaceInstance("stairs", stairsPos, psi)
}

// PhaseGate detects the Marshaller's arm-straight down-crossing on the
// host's sin_wave dataref: lr/track changes are held until this reports
// true.
func (d *DGS) PhaseGate(sinWave float32) bool {
	crossed := d.prevSinWave > 0 && sinWave <= 0
	d.prevSinWave = sinWave
	return crossed
}

// DepartureMode computes the scrolling departure-board text: parked on a
// stand matching the plane's current heading, not on ground and beacon off,
// displaying ICAO + stand id + an optional briefing across a
// 6-character row, scrolling via r1_scroll.
type DepartureMode struct {
	icao, standID, briefing string
	text                    string
	r1Scroll                float32
}

// Eligible reports whether departure mode applies this tick.
func Eligible(onGround bool, beaconOn bool, planeHdgt, standHdgt float32, nwZ float32) bool {
	if onGround || beaconOn {
		return false
	}
	return math.Abs(math.RA(planeHdgt-standHdgt)) <= 3 && math.Abs(nwZ) <= 1
}

// Start (re)initialises the scrolling text for a departure-mode session.
func (m *DepartureMode) Start(icao, standID, briefing string) {
	m.icao, m.standID, m.briefing = icao, standID, briefing
	m.text = icao + " " + standID
	if briefing != "" {
		m.text += " " + briefing
	}
	m.r1Scroll = 0
}

// Tick advances the scroll by one dataref poll, decrementing r1_scroll by
// 2 and rotating the display string by one character once it reaches 0.
func (m *DepartureMode) Tick() (row [6]byte, r1Scroll float32) {
	m.r1Scroll -= 2
	if m.r1Scroll <= 0 {
		m.r1Scroll += 10
		if len(m.text) > 0 {
			m.text = m.text[1:] + m.text[:1]
		}
	}
	for i := 0; i < 6; i++ {
		if i < len(m.text) {
			row[i] = m.text[i]
		} else {
			row[i] = ' '
		}
	}
	return row, m.r1Scroll
}
