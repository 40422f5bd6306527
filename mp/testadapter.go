// mp/testadapter.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mp

import "github.com/google/uuid"

// TestAdapter is a scripted MpAdapter for tests and the cmd/samsim driver:
// it implements Refresh with synthetic traffic instead of a real
// multiplayer network. Each synthesized plane is tagged with a
// stable UUID-derived key so repeated Refresh calls track the same
// remotePlane across ticks, exactly as a real adapter's session ids would.
type TestAdapter struct {
	planes []RemoteState
}

// NewTestAdapter builds a TestAdapter with no synthetic traffic; use
// AddPlane to script a scenario.
func NewTestAdapter() *TestAdapter {
	return &TestAdapter{}
}

// AddPlane registers one synthetic remote aircraft, generating a stable
// key for it. The returned key can be used to update the plane's state
// between ticks via UpdatePlane.
func (a *TestAdapter) AddPlane(lat, lon float32, x, z float64, psi float32, icaoType string) string {
	key := uuid.NewString()
	a.planes = append(a.planes, RemoteState{
		Key: key, Lat: lat, Lon: lon, X: x, Z: z, Psi: psi, ICAOType: icaoType,
	})
	return key
}

// UpdatePlane mutates a previously-added synthetic plane's observable
// state in place, for scripting a docking sequence across ticks.
func (a *TestAdapter) UpdatePlane(key string, mutate func(*RemoteState)) {
	for i := range a.planes {
		if a.planes[i].Key == key {
			mutate(&a.planes[i])
			return
		}
	}
}

// Refresh returns the current synthetic traffic snapshot.
func (a *TestAdapter) Refresh(now float64) []RemoteState {
	return a.planes
}
