// scenery/registry.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/rand"
)

// Registry is the process-singleton, single-threaded context object
// that owns every Scenery, the shared library jetway templates, the
// zero-config jetway pool, and the reference-frame generation they're all
// stamped against. It is passed explicitly to the plane and DGS state
// machines rather than reached for as an ambient global.
type Registry struct {
	Sceneries []*Scenery
	LibJws    map[int]*LibJw

	// ZeroConfig holds jetways synthesised for library-id instances that
	// had no manifest entry. Cleared in its entirety on every RefGen bump.
	ZeroConfig []*Jetway

	refGen            uint32
	lastLatRef        float64
	lastLonRef        float64
	haveLastRef       bool
	rng               *rand.Rand

	lg *log.Logger
}

// NewRegistry builds an empty Registry. Sceneries are added with AddScenery
// as packs are parsed.
func NewRegistry(lg *log.Logger) *Registry {
	return &Registry{
		LibJws: make(map[int]*LibJw),
		rng:    rand.New(),
		lg:     lg,
	}
}

// AddScenery registers a parsed pack, merging any library templates it
// carried (only the shared library pack is expected to define <sets>, but
// a duplicate from elsewhere is logged rather than treated as fatal).
func (r *Registry) AddScenery(sc *Scenery, libs map[int]*LibJw) {
	r.Sceneries = append(r.Sceneries, sc)
	for id, t := range libs {
		if _, dup := r.LibJws[id]; dup {
			r.lg.Warn("duplicate library jetway template id across packs", "id", id)
		}
		r.LibJws[id] = t
	}
	for _, jw := range sc.Jetways {
		if jw.LibraryID != 0 {
			if t, ok := r.LibJws[jw.LibraryID]; ok {
				jw.ApplyLibraryTemplate(t)
			}
		}
	}
}

// RefGen reports the registry's current reference-frame generation.
func (r *Registry) RefGen() uint32 { return r.refGen }

// CheckRefGen is the reference-frame tracker: called at every dataref read
// that uses local coordinates, it compares the host's current (lat_ref,
// lon_ref) against the last remembered pair and, on change, bumps RefGen
// and drops everything keyed to the old frame. Returns true if a bump
// occurred this call.
func (r *Registry) CheckRefGen(h host.Host) bool {
	lat, lon := h.LocalToWorld(0, 0)
	if r.haveLastRef && lat == r.lastLatRef && lon == r.lastLonRef {
		return false
	}
	r.haveLastRef = true
	r.lastLatRef, r.lastLonRef = lat, lon
	r.refGen++
	r.ZeroConfig = r.ZeroConfig[:0]
	r.lg.Debug("reference frame re-anchored", "ref_gen", r.refGen, "lat_ref", lat, "lon_ref", lon)
	return true
}

// SceneriesNear returns every Scenery whose inflated bbox contains (lat, lon).
func (r *Registry) SceneriesNear(lat, lon float32) []*Scenery {
	var out []*Scenery
	for _, sc := range r.Sceneries {
		if sc.InBBox(lat, lon) {
			out = append(out, sc)
		}
	}
	return out
}

// NewZeroConfigJetway synthesises a jetway for a library-id instance with
// no manifest entry: back-filled from its library template, snapped to
// the nearest stand if one is within range, with a randomised plausible
// rest pose. It is appended to the registry's zero-config pool, owned
// there rather than by any Scenery.
func (r *Registry) NewZeroConfigJetway(libID int, x, y, z float64, psi float32, nearestStand *Stand, standIdx int) *Jetway {
	jw := &Jetway{
		LibraryID:  libID,
		Heading:    psi,
		StandIndex: -1,
		X:          x, Y: y, Z: z, Psi: float64(psi),
		ObjRefGen: r.refGen,
	}
	if t, ok := r.LibJws[libID]; ok {
		jw.ApplyLibraryTemplate(t)
	}
	if nearestStand != nil {
		jw.StandIndex = standIdx
		jw.Lat, jw.Lon = nearestStand.Lat, nearestStand.Lon
		jw.Name = nearestStand.ID
	}

	// Randomise the rest pose within the template's own motion envelope so
	// a farm of zero-config jetways doesn't look perfectly uniform.
	jw.InitialRot1 = r.rng.Float32Range(jw.MinRot1, jw.MaxRot1)
	jw.InitialRot2 = r.rng.Float32Range(jw.MinRot2, jw.MaxRot2)
	jw.InitialRot3 = r.rng.Float32Range(jw.MinRot3, jw.MaxRot3)
	jw.InitialExtent = r.rng.Float32Range(jw.MinExtent, jw.MaxExtent)
	jw.ResetToRest()

	r.ZeroConfig = append(r.ZeroConfig, jw)
	return jw
}

// AllJetways iterates every Jetway the registry owns: those belonging to
// Sceneries near (lat, lon), plus the whole zero-config pool, which is
// always consulted regardless of bbox.
func (r *Registry) AllJetways(lat, lon float32) []*Jetway {
	var out []*Jetway
	for _, sc := range r.SceneriesNear(lat, lon) {
		out = append(out, sc.Jetways...)
	}
	out = append(out, r.ZeroConfig...)
	return out
}

// ResolveLocalXML converts a Jetway's geodetic position to the host's
// current local frame by iterative terrain probe: probe at zero elevation,
// convert the resulting point back to world, and reprobe, rather than
// trusting a single probe at an assumed elevation. Terrain probe failure
// marks the Jetway permanently bad.
func ResolveLocalXML(h host.Host, jw *Jetway, refGen uint32) {
	x, z := h.WorldToLocal(float64(jw.Lat), float64(jw.Lon))
	y, ok := h.ProbeElevation(x, z)
	if !ok {
		jw.Bad = true
		return
	}
	// One more pass: re-derive world coordinates from the probed point and
	// reprobe, since the first WorldToLocal used y=0 and terrain contour
	// can shift x,z slightly at the true elevation.
	lat, lon := h.LocalToWorld(x, z)
	x, z = h.WorldToLocal(lat, lon)
	y, ok = h.ProbeElevation(x, z)
	if !ok {
		jw.Bad = true
		return
	}
	jw.XMLX, jw.XMLY, jw.XMLZ = x, y, z
	jw.XMLRefGen = refGen
}
