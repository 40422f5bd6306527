// math/latlong.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Point2LL is a (longitude, latitude) pair in degrees, matching the
// manifest and apt.dat wire formats. Index 0 is longitude so that it lines
// up with the x (east/west) component of local Cartesian frames.
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 { return p[0] }
func (p Point2LL) Latitude() float32  { return p[1] }

// MetersPerDegreeLatitude is constant to good approximation (WGS84 varies
// it by under 1% pole to equator, which is well inside the tolerances this
// system cares about for bounding-box inflation).
const MetersPerDegreeLatitude = 111320.0

// MetersPerDegreeLongitude returns the length of one degree of longitude at
// the given latitude, which shrinks to zero at the poles.
func MetersPerDegreeLongitude(latDeg float32) float32 {
	return MetersPerDegreeLatitude * Cos(Radians(latDeg))
}

// DegreesLatitudeForMeters and DegreesLongitudeForMeters invert the above,
// used to inflate a Scenery's geodetic bounding box by kFarSkip meters.
func DegreesLatitudeForMeters(m float32) float32 {
	return m / MetersPerDegreeLatitude
}

func DegreesLongitudeForMeters(m, latDeg float32) float32 {
	mpd := MetersPerDegreeLongitude(latDeg)
	if mpd == 0 {
		return 180
	}
	return m / mpd
}
