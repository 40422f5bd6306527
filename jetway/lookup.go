// jetway/lookup.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jetway

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/scenery"
)

// cacheEntry records the exact draw-object coordinates the cached Jetway
// was last matched against, so a hash collision at 0.5 m resolution can't
// be mistaken for a hit: the hit test confirms an exact match of (x, y, z)
// against the cached Jetway before trusting it.
type cacheEntry struct {
	x, y, z float64
	jw      *scenery.Jetway
}

// cacheSize is the fixed capacity of the lookup cache: a direct-mapped
// array of size 2^13 would only differ from a fixed-capacity LRU of the
// same size in *which* stale entry gets silently overwritten on a hash
// collision, and there is no observable guarantee about that beyond "a hit
// returns the Jetway last matched at those exact coordinates, a miss falls
// through to the scan." hashicorp/golang-lru/v2 gives the same O(1)
// expected lookup and bounded memory under that contract.
const cacheSize = 1 << 13

// Accessor resolves host draw calls to Jetways.
type Accessor struct {
	reg   *scenery.Registry
	cache *lru.Cache[uint64, cacheEntry]
	lg    *log.Logger
}

// NewAccessor builds an Accessor bound to reg.
func NewAccessor(reg *scenery.Registry, lg *log.Logger) *Accessor {
	c, err := lru.New[uint64, cacheEntry](cacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which cacheSize
		// never is; a panic here would indicate a programming error, not a
		// runtime condition callers should handle.
		panic(fmt.Sprintf("jetway: building lookup cache: %v", err))
	}
	return &Accessor{reg: reg, cache: c, lg: lg}
}

// hashXZ quantizes (x, z) to 0.5 m resolution and folds them into a single
// cache key.
func hashXZ(x, z float64) uint64 {
	qx := int64(x * 2)
	qz := int64(z * 2)
	return uint64(qx)*1000003 ^ uint64(qz)
}

// Resolve maps one host draw call to its Jetway: cache lookup first, then
// a scan of manifest jetways needing fresh XML resolution, then the
// zero-config pool matched by exact position, then synthesis of a new
// zero-config jetway as a last resort. planeLat/planeLon locate the bbox
// search when the cache misses; h provides terrain probing and the
// current ref_gen.
func (a *Accessor) Resolve(h host.Host, obj host.DrawObject, planeLat, planeLon float32) *scenery.Jetway {
	refGen := a.reg.RefGen()
	key := hashXZ(obj.Pos.X, obj.Pos.Z)

	if ce, ok := a.cache.Get(key); ok {
		if ce.x == obj.Pos.X && ce.y == obj.Pos.Y && ce.z == obj.Pos.Z && ce.jw.ObjRefGen == refGen {
			return ce.jw
		}
		a.cache.Remove(key)
	}

	for _, jw := range a.reg.AllJetways(planeLat, planeLon) {
		if jw.Bad {
			continue
		}
		if jw.XMLRefGen != refGen {
			scenery.ResolveLocalXML(h, jw, refGen)
			if jw.Bad {
				continue
			}
		}
		if math.Abs(float32(obj.Pos.X-jw.XMLX)) <= 2.5 &&
			math.Abs(float32(obj.Pos.Z-jw.XMLZ)) <= 2.5 &&
			math.Abs(math.RA(jw.Heading-obj.Psi)) <= 5 {
			jw.X, jw.Y, jw.Z, jw.Psi = obj.Pos.X, obj.Pos.Y, obj.Pos.Z, float64(obj.Psi)
			jw.ObjRefGen = refGen
			a.cache.Add(key, cacheEntry{x: obj.Pos.X, y: obj.Pos.Y, z: obj.Pos.Z, jw: jw})
			return jw
		}
	}

	for _, jw := range a.reg.ZeroConfig {
		if jw.X == obj.Pos.X && jw.Y == obj.Pos.Y && jw.Z == obj.Pos.Z {
			a.cache.Add(key, cacheEntry{x: obj.Pos.X, y: obj.Pos.Y, z: obj.Pos.Z, jw: jw})
			return jw
		}
	}

	if obj.LibID >= 1 {
		jw := a.reg.NewZeroConfigJetway(obj.LibID, obj.Pos.X, obj.Pos.Y, obj.Pos.Z, obj.Psi, nil, -1)
		a.cache.Add(key, cacheEntry{x: obj.Pos.X, y: obj.Pos.Y, z: obj.Pos.Z, jw: jw})
		a.lg.Debug("synthesised zero-config jetway", "lib_id", obj.LibID)
		return jw
	}

	return nil
}

// InvalidateRefGen is called after Registry.CheckRefGen reports a bump: the
// cache's entries are all stamped against the old generation and must be
// dropped wholesale.
func (a *Accessor) InvalidateRefGen() {
	a.cache.Purge()
}
