// math/geom.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// 2D vector helpers

func Add2f(a, b [2]float32) [2]float32 { return [2]float32{a[0] + b[0], a[1] + b[1]} }
func Sub2f(a, b [2]float32) [2]float32 { return [2]float32{a[0] - b[0], a[1] - b[1]} }
func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}
func Dot(a, b [2]float32) float32 { return a[0]*b[0] + a[1]*b[1] }

func Length2f(v [2]float32) float32       { return Sqrt(Dot(v, v)) }
func Distance2f(a, b [2]float32) float32  { return Length2f(Sub2f(a, b)) }
func Lerp2f(x float32, a, b [2]float32) [2]float32 {
	return [2]float32{Lerp(x, a[0], b[0]), Lerp(x, a[1], b[1])}
}

///////////////////////////////////////////////////////////////////////////
// Extent2D: axis-aligned bounding box

// Extent2D represents a 2D bounding box with vertices at its minimum and
// maximum corners. Used both for Scenery bounding boxes in geodetic
// coordinates and for per-jetway kFarSkip boxes.
type Extent2D struct {
	P0, P1 [2]float32
}

func EmptyExtent2D() Extent2D {
	return Extent2D{P0: [2]float32{1e30, 1e30}, P1: [2]float32{-1e30, -1e30}}
}

func Extent2DFromPoints(pts [][2]float32) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = Union(e, p)
	}
	return e
}

func Union(e Extent2D, p [2]float32) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

func UnionExtents(a, b Extent2D) Extent2D {
	a = Union(a, b.P0)
	a = Union(a, b.P1)
	return a
}

func (e Extent2D) Expand(d float32) Extent2D {
	return Extent2D{
		P0: [2]float32{e.P0[0] - d, e.P0[1] - d},
		P1: [2]float32{e.P1[0] + d, e.P1[1] + d},
	}
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// InsideWrapLongitude is Inside but normalizes the longitude test through RA
// so a bounding box that straddles the antimeridian still behaves, per
// spec's "in_bbox is done with RA(lon - bb_lon_min)" rule. Dimension 0 is
// treated as longitude, dimension 1 as latitude.
func (e Extent2D) InsideWrapLongitude(lon, lat float32) bool {
	if lat < e.P0[1] || lat > e.P1[1] {
		return false
	}
	width := e.P1[0] - e.P0[0]
	d := RA(lon - e.P0[0])
	return d >= 0 && d <= width
}

///////////////////////////////////////////////////////////////////////////
// Line/segment geometry, used by jetway candidate collision tests.

// LineLineIntersect returns the intersection point of the infinite lines
// through (p1,p2) and (p3,p4), plus whether a valid (non-parallel)
// intersection exists.
func LineLineIntersect(p1f, p2f, p3f, p4f [2]float32) ([2]float32, bool) {
	p1 := [2]float64{float64(p1f[0]), float64(p1f[1])}
	p2 := [2]float64{float64(p2f[0]), float64(p2f[1])}
	p3 := [2]float64{float64(p3f[0]), float64(p3f[1])}
	p4 := [2]float64{float64(p4f[0]), float64(p4f[1])}

	d12 := [2]float64{p1[0] - p2[0], p1[1] - p2[1]}
	d34 := [2]float64{p3[0] - p4[0], p3[1] - p4[1]}
	denom := d12[0]*d34[1] - d12[1]*d34[0]
	if gomath.Abs(denom) < 1e-5 {
		return [2]float32{}, false
	}
	numx := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[0]-p4[0]) - (p1[0]-p2[0])*(p3[0]*p4[1]-p3[1]*p4[0])
	numy := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[1]-p4[1]) - (p1[1]-p2[1])*(p3[0]*p4[1]-p3[1]*p4[0])

	return [2]float32{float32(numx / denom), float32(numy / denom)}, true
}

// SegmentIntersectST solves p1 + s*(p2-p1) == p3 + t*(p4-p3) for (s,t) via
// the 2x2 determinant, and reports a collision iff both parameters lie in
// [0,1] and the segments aren't (nearly) parallel. This is the exact test
// CollisionCheck/CollisionCheckExtended reduce to.
func SegmentIntersectST(p1, p2, p3, p4 [2]float32) (s, t float32, ok bool) {
	d1 := Sub2f(p2, p1)
	d2 := Sub2f(p4, p3)
	det := d1[0]*d2[1] - d1[1]*d2[0]
	if Abs(det) < 0.2 {
		return 0, 0, false
	}
	r := Sub2f(p3, p1)
	s = (r[0]*d2[1] - r[1]*d2[0]) / det
	t = (r[0]*d1[1] - r[1]*d1[0]) / det
	return s, t, s >= 0 && s <= 1 && t >= 0 && t <= 1
}
