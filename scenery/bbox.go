// scenery/bbox.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import "github.com/samkit/scenerymgr/math"

// computeBBox builds a Scenery's geodetic bounding box across its jetways
// and stands, inflated by KFarSkip meters in latitude and by the
// corresponding longitude delta at each entity's own latitude. The
// inflation is per-entity since a degree of longitude shrinks away from
// the equator.
func computeBBox(s *Scenery) math.Extent2D {
	e := math.EmptyExtent2D()
	inflate := func(lat, lon float32) {
		dLat := math.DegreesLatitudeForMeters(KFarSkip)
		dLon := math.DegreesLongitudeForMeters(KFarSkip, lat)
		e = math.Union(e, [2]float32{lon - dLon, lat - dLat})
		e = math.Union(e, [2]float32{lon + dLon, lat + dLat})
	}
	for _, jw := range s.Jetways {
		inflate(jw.Lat, jw.Lon)
		jw.BBLatMin, jw.BBLatMax = jw.Lat-math.DegreesLatitudeForMeters(KFarSkip), jw.Lat+math.DegreesLatitudeForMeters(KFarSkip)
		d := math.DegreesLongitudeForMeters(KFarSkip, jw.Lat)
		jw.BBLonMin, jw.BBLonMax = jw.Lon-d, jw.Lon+d
	}
	for _, st := range s.Stands {
		inflate(st.Lat, st.Lon)
	}
	return e
}
