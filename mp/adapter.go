// mp/adapter.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mp

// RemoteState is one remote aircraft's observed state for a tick, as any
// MpAdapter must report it: position, heading, ICAO type, beacon state.
type RemoteState struct {
	Key      string // opaque per-adapter identity
	Lat, Lon float32
	X, Z     float64
	Psi      float32
	ICAOType string
	OnGround bool
	BeaconOn bool
}

// MpAdapter produces the current set of remote planes known to whatever
// multiplayer network layer it wraps. Implementations own their own
// network/IPC connection; this package never reaches outside the
// interface. No real xPilot/TGXP/LiveTraffic wire protocol is implemented
// here — concrete adapters are each their own integration; TestAdapter is
// the reference implementation exercising the contract with synthetic
// traffic.
type MpAdapter interface {
	// Refresh is called once per orchestrator tick and returns every
	// remote aircraft currently visible.
	Refresh(now float64) []RemoteState
}
