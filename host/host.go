// host/host.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package host defines the contract the flight-simulator host must satisfy
// for this module to drive jetways and DGS objects. The host itself
// (frame scheduling, the dataref registry, terrain probing, world/local
// coordinate conversion, instanced object placement, and audio) is an
// external collaborator; this package only names the shape of that
// collaboration so the rest of the module can be built and tested without
// a live simulator attached.
package host

import "github.com/samkit/scenerymgr/math"

// LocalPoint is a position in the host's current local Cartesian frame
// (meters), valid only until the host re-anchors that frame (see RefGen).
type LocalPoint struct {
	X, Y, Z float64
}

// DrawObject is what the host supplies on each per-frame draw-time dataref
// or command callback: the local position and yaw of the object instance
// the callback concerns, plus whatever the host attached the callback to
// (a jetway instance, a library-jetway slot, a DGS object).
type DrawObject struct {
	Pos      LocalPoint
	Psi      float32 // heading/yaw, degrees
	LibID    int     // library id the draw call was registered against, 0 if none
	DrefName string  // the full dataref name the host resolved the callback from
}

// RefGen reports the host's reference-frame generation: it must change
// value whenever the host re-anchors its local coordinate system (i.e.
// whenever its lat_ref/lon_ref changes), and never otherwise. Consumers
// compare the returned value against their last-seen one to decide whether
// cached local coordinates need to be recomputed.
type RefGen interface {
	RefGen() uint32
}

// TerrainProbe resolves the elevation (meters, host-local Y) at a given
// local (x,z), or reports failure (e.g. no terrain loaded under the
// point). Callers iterate the probe-at-zero / convert-back / reprobe
// dance themselves; TerrainProbe is the single primitive that operation
// is built from.
type TerrainProbe interface {
	ProbeElevation(x, z float64) (y float64, ok bool)
}

// WorldLocal converts between geodetic (lat, lon) and the host's current
// local Cartesian frame. Implementations are only valid for the RefGen
// generation active when they were obtained.
type WorldLocal interface {
	WorldToLocal(lat, lon float64) (x, z float64)
	LocalToWorld(x, z float64) (lat, lon float64)
}

// Clock supplies the host's notion of "now", expressed as seconds of
// simulator time. Tests and the scripted cmd/samsim driver provide their
// own monotonically increasing implementation.
type Clock interface {
	Now() float64
}

// AudioChannel is a handle to a single alert sound the host is playing on
// this module's behalf (e.g. the jetway docking alarm). Stop is
// idempotent.
type AudioChannel interface {
	Stop()
}

// AlertSound starts a looping alert sound positioned at p and returns a
// handle the caller stops when the animation phase that requested it
// completes.
type AlertSound interface {
	StartAlert(p LocalPoint) AudioChannel
}

// InstancedObject is a handle to a host-placed instanced scene object (a
// Marshaller or a boarding-stairs model); Remove destroys it.
type InstancedObject interface {
	Remove()
}

// ObjectPlacer places instanced scene objects driven by this module but
// rendered entirely by the host (Non-goal: rendering is the host's job).
type ObjectPlacer interface {
	PlaceInstance(name string, pos LocalPoint, psi float32) InstancedObject
}

// Host bundles every capability the module consumes from the simulator.
// A concrete binding (SimConnect, X-Plane's XPLMInstance/XPLMProbeTerrainXYZ,
// or a scripted test harness) implements it; this module never imports a
// specific simulator SDK.
type Host interface {
	RefGen
	TerrainProbe
	WorldLocal
	Clock
	AlertSound
	ObjectPlacer
}

// Point2LLOf is a convenience for constructing a math.Point2LL from
// (lon, lat) order, matching manifest wire order.
func Point2LLOf(lon, lat float32) math.Point2LL {
	return math.Point2LL{lon, lat}
}
