// scenery/types.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package scenery owns the parsed, static side of the system: per-pack
// manifests (sam.xml), airport stand tables (apt.dat), the scenery_packs.ini
// enumeration that orders and filters packs, and the bounding-box index
// used to find which Sceneries a plane or DGS object might be near. Once
// loaded, a Registry is immutable except for the small set of mutable
// per-entity animation and cache fields documented on Stand and Jetway.
package scenery

import (
	"github.com/iancoleman/orderedmap"

	"github.com/samkit/scenerymgr/math"
)

// DoorLocation identifies which aircraft door a jetway is built to serve.
type DoorLocation int

const (
	DoorLF1 DoorLocation = iota
	DoorLF2
	DoorLU1
)

func (d DoorLocation) String() string {
	switch d {
	case DoorLF1:
		return "LF1"
	case DoorLF2:
		return "LF2"
	case DoorLU1:
		return "LU1"
	default:
		return "LF1"
	}
}

func ParseDoorLocation(s string) DoorLocation {
	switch s {
	case "LF2":
		return DoorLF2
	case "LU1":
		return DoorLU1
	default:
		return DoorLF1
	}
}

// Stand is one aircraft parking position, as read from an apt.dat "1300"
// line.
type Stand struct {
	ID   string
	Lat  float32
	Lon  float32
	Hdgt float32 // (-180,180]
	// SinHdgt, CosHdgt are precomputed once at load time since every DGS
	// and jetway frame transform needs them every tick.
	SinHdgt, CosHdgt float32

	// Local-frame cache, valid only while RefGen == the registry's current
	// generation.
	RefGen            uint32
	StandX, StandY, StandZ float64

	// DGSAssoc records whether a DGS object has associated itself with
	// this stand (scenery §4.6): its local (x,z) and the time of
	// association.
	DGSAssoc   bool
	DGSX, DGSZ float64
	DGSAssocAt float64
}

// NewStand precomputes the trig identities used on every frame.
func NewStand(id string, lat, lon, hdgt float32) *Stand {
	hdgt = math.RA(hdgt)
	return &Stand{
		ID:      id,
		Lat:     lat,
		Lon:     lon,
		Hdgt:    hdgt,
		SinHdgt: math.Sin(math.Radians(hdgt)),
		CosHdgt: math.Cos(math.Radians(hdgt)),
	}
}

// ToStandFrame converts a local-frame point into the stand's own frame:
// origin at the stand, +z pointing along the stand's heading, +x to its
// right. This is the frame nearest-stand search and DGS tracking operate
// in.
func (s *Stand) ToStandFrame(x, z float64) (sx, sz float32) {
	dx := float32(x) - float32(s.StandX)
	dz := float32(z) - float32(s.StandZ)
	// Rotate by -hdgt.
	sx = dx*s.CosHdgt - dz*s.SinHdgt
	sz = dx*s.SinHdgt + dz*s.CosHdgt
	return sx, sz
}

// LibJw is a library jetway template: geometric defaults applied to a
// Jetway that names a library id but didn't fully specify its own
// geometry.
type LibJw struct {
	ID   int
	Jetway
}

// Jetway is the abstract jetway entity. Geometry, manifest metadata, and
// motion limits are immutable after load; the fields below the "mutable
// state" marker are written every tick by at most one JwCtrl at a time.
type Jetway struct {
	Name      string
	LibraryID int // 0 if this is not a library-template instance
	Sound     string

	Lat, Lon, Heading float32
	Height            float32
	WheelPos          float32
	CabinPos          float32
	CabinLength       float32
	WheelDiameter     float32
	WheelDistance     float32

	MinRot1, MaxRot1 float32
	MinRot2, MaxRot2 float32
	MinRot3, MaxRot3 float32
	MinExtent, MaxExtent float32
	MinWheels, MaxWheels float32

	InitialRot1, InitialRot2, InitialRot3 float32
	InitialExtent                         float32

	Door DoorLocation

	// Per-jetway bounding box for the kFarSkip cheap reject (populated
	// from Lat/Lon when the owning Scenery's bbox is built).
	BBLatMin, BBLatMax, BBLonMin, BBLonMax float32

	// Back-reference to the nearest Stand, non-owning: an index into the
	// owning Scenery's Stands slice, or -1 if none. Populated at creation
	// (for zero-config jetways) and never mutated thereafter.
	StandIndex int

	// --- mutable state, owned exclusively by the locking JwCtrl ---

	Rotate1, Rotate2, Rotate3   float32
	Extent                      float32
	Wheels                      float32
	WheelRotateC, WheelRotateL, WheelRotateR float32
	WarnLight                   float32

	// xml_x/xml_y/xml_z are the low-precision, terrain-probe-derived
	// local coordinates computed once from Lat/Lon; XMLRefGen is the
	// RefGen generation they're valid for.
	XMLX, XMLY, XMLZ float64
	XMLRefGen        uint32

	// X/Y/Z/Psi are the higher-precision coordinates taken from the
	// host's actual draw call once matched to this Jetway; ObjRefGen is
	// the RefGen generation they're valid for, only meaningful while
	// ObjRefGen == the registry's current generation.
	X, Y, Z, Psi float64
	ObjRefGen    uint32

	Locked bool
	Bad    bool // terrain probe failed permanently; always skipped
}

// AtRest reports whether the jetway's mutable animation state matches its
// rest pose to within tol: the round-trip a dock followed by an undock
// should leave it in.
func (jw *Jetway) AtRest(tol float32) bool {
	expWheels := math.Tan(math.Radians(jw.InitialRot3)) * (jw.WheelPos + jw.InitialExtent)
	return math.Abs(jw.Rotate1-jw.InitialRot1) <= tol &&
		math.Abs(jw.Rotate2-jw.InitialRot2) <= tol &&
		math.Abs(jw.Rotate3-jw.InitialRot3) <= tol &&
		math.Abs(jw.Extent-jw.InitialExtent) <= tol &&
		math.Abs(jw.Wheels-expWheels) <= tol &&
		jw.WarnLight == 0 &&
		!jw.Locked
}

// ResetToRest snaps a jetway's animation state back to its rest pose,
// releasing its lock. Used on teleportation detection and animation
// timeout.
func (jw *Jetway) ResetToRest() {
	jw.Rotate1 = jw.InitialRot1
	jw.Rotate2 = jw.InitialRot2
	jw.Rotate3 = jw.InitialRot3
	jw.Extent = jw.InitialExtent
	jw.Wheels = math.Tan(math.Radians(jw.InitialRot3)) * (jw.WheelPos + jw.InitialExtent)
	jw.WarnLight = 0
	jw.Locked = false
}

// ApplyLibraryTemplate back-fills a Jetway's geometry from a LibJw
// template, but only for fields the manifest left at their zero value:
// an explicit manifest entry always wins over the library default.
func (jw *Jetway) ApplyLibraryTemplate(t *LibJw) {
	fill := func(dst *float32, src float32) {
		if *dst == 0 {
			*dst = src
		}
	}
	fill(&jw.Height, t.Height)
	fill(&jw.WheelPos, t.WheelPos)
	fill(&jw.CabinPos, t.CabinPos)
	fill(&jw.CabinLength, t.CabinLength)
	fill(&jw.WheelDiameter, t.WheelDiameter)
	fill(&jw.WheelDistance, t.WheelDistance)
	fill(&jw.MinRot1, t.MinRot1)
	fill(&jw.MaxRot1, t.MaxRot1)
	fill(&jw.MinRot2, t.MinRot2)
	fill(&jw.MaxRot2, t.MaxRot2)
	fill(&jw.MinRot3, t.MinRot3)
	fill(&jw.MaxRot3, t.MaxRot3)
	fill(&jw.MinExtent, t.MinExtent)
	fill(&jw.MaxExtent, t.MaxExtent)
	fill(&jw.MinWheels, t.MinWheels)
	fill(&jw.MaxWheels, t.MaxWheels)
	fill(&jw.InitialRot1, t.InitialRot1)
	fill(&jw.InitialRot2, t.InitialRot2)
	fill(&jw.InitialRot3, t.InitialRot3)
	fill(&jw.InitialExtent, t.InitialExtent)
}

// Animation is a named, piecewise-linear (t,v) curve driving one
// AnimatedObject datum.
type Animation struct {
	Dataref         string
	Autoplay        bool
	RandomizePhase  bool
	AugmentWindSpeed bool
	Keys            []AnimKey // sorted by T, unique T
}

type AnimKey struct {
	T, V float32
}

// Eval linearly interpolates the animation's value at t, clamping to the
// first/last key outside the curve's domain.
func (a *Animation) Eval(t float32) float32 {
	keys := a.Keys
	if len(keys) == 0 {
		return 0
	}
	if t <= keys[0].T {
		return keys[0].V
	}
	if t >= keys[len(keys)-1].T {
		return keys[len(keys)-1].V
	}
	for i := 1; i < len(keys); i++ {
		if t <= keys[i].T {
			a0, a1 := keys[i-1], keys[i]
			x := (t - a0.T) / (a1.T - a0.T)
			return math.Lerp(x, a0.V, a1.V)
		}
	}
	return keys[len(keys)-1].V
}

// AnimatedObject is a host draw-time scene object driven by one or more
// Animations, either autoplaying off process time or toggled on/off by a
// menu checkbox.
type AnimatedObject struct {
	Lat, Lon, Elevation, Heading float32
	Anims                        []*Animation

	// Toggle state for user-triggered (non-autoplay) objects.
	On    bool
	Phase float32 // current position within the OFF_2_ON/ON_2_OFF curve
}

// Scenery is one loaded manifest: the jetways, stands, animated objects,
// and animation definitions it owns, plus its geodetic bounding box.
// Constructed once at startup and immutable thereafter (aside from the
// mutable fields on the Stand/Jetway values it owns).
type Scenery struct {
	Name string
	ICAO string // optional, from apt.dat "1302 icao_code"

	BBox math.Extent2D // (lon,lat) order, already inflated by kFarSkip

	Jetways         []*Jetway
	Stands          []*Stand
	AnimatedObjects []*AnimatedObject

	// GUIOrder preserves the pack's own checkbox label->title order from
	// sam.xml's <gui> section, for a settings-menu renderer that wants to
	// lay options out the way the pack author wrote them rather than in
	// map-iteration order.
	GUIOrder *orderedmap.OrderedMap
}

// InBBox is the cheap first-cut filter for whether a point might be near
// this scenery: the longitude test goes through RA so a bbox straddling
// the antimeridian still behaves.
func (s *Scenery) InBBox(lat, lon float32) bool {
	return s.BBox.InsideWrapLongitude(lon, lat)
}

// KFarSkip is the bounding-box inflation distance, in meters, applied to
// every Scenery's geodetic bbox.
const KFarSkip = 5000.0
