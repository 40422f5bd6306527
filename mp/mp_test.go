// mp/mp_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mp

import (
	"testing"

	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/scenery"
)

type fakeChannel struct{}

func (fakeChannel) Stop() {}

type fakeInstance struct{}

func (fakeInstance) Remove() {}

// fakeHost is a minimal host.Host satisfying every accessor the
// orchestrator's plane FSMs might call during a tick, for tests that don't
// have a live simulator to attach to.
type fakeHost struct{}

func (fakeHost) RefGen() uint32                                     { return 1 }
func (fakeHost) ProbeElevation(x, z float64) (float64, bool)        { return 0, true }
func (fakeHost) WorldToLocal(lat, lon float64) (float64, float64)   { return lat, lon }
func (fakeHost) LocalToWorld(x, z float64) (float64, float64)       { return x, z }
func (fakeHost) Now() float64                                       { return 0 }
func (fakeHost) StartAlert(p host.LocalPoint) host.AudioChannel     { return fakeChannel{} }
func (fakeHost) PlaceInstance(name string, pos host.LocalPoint, psi float32) host.InstancedObject {
	return fakeInstance{}
}

func TestOrchestratorTracksAndDropsPlanes(t *testing.T) {
	lg := log.New("error", t.TempDir(), 0)
	reg := scenery.NewRegistry(lg)
	o := New(lg)
	ta := NewTestAdapter()
	key := ta.AddPlane(50, 8, 100, 200, 90, "A320")
	o.SetAdapter(ta)

	o.Tick(reg, fakeHost{}, 0, 0.1)
	if len(o.planes) != 1 {
		t.Fatalf("expected 1 tracked remote plane, got %d", len(o.planes))
	}

	ta.planes = nil // simulate the plane leaving the network
	o.Tick(reg, fakeHost{}, 1, 0.1)
	if len(o.planes) != 0 {
		t.Fatalf("expected the departed plane to be dropped, got %d", len(o.planes))
	}
	_ = key
}

func TestOrchestratorNoopWithoutAdapter(t *testing.T) {
	lg := log.New("error", t.TempDir(), 0)
	reg := scenery.NewRegistry(lg)
	o := New(lg)
	o.Tick(reg, fakeHost{}, 0, 0.1) // must not panic with no adapter attached
}
