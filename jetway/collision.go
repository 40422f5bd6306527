// jetway/collision.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import "github.com/samkit/scenerymgr/math"

// CollisionCheck reports whether extending this jetway's cabin from its
// current position to its fully-extended position would cross a
// neighbouring jetway's rest-pose segment, used to avoid extending into a
// neighbour that is still parked. Both segments are expressed in the same
// (e.g. the candidate door) frame by the caller.
func CollisionCheck(curStart, curEnd, neighborBase, neighborRest [2]float32) bool {
	_, _, ok := math.SegmentIntersectST(curStart, curEnd, neighborBase, neighborRest)
	return ok
}

// CollisionCheckExtended reports whether both jetways' fully-extended
// segments would cross, used during candidate selection to reject a pair
// that would collide once both are driven out.
func CollisionCheckExtended(aBase, aExtended, bBase, bExtended [2]float32) bool {
	_, _, ok := math.SegmentIntersectST(aBase, aExtended, bBase, bExtended)
	return ok
}
