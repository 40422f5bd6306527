// scenery/cache.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"compress/flate"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheEntry is the on-disk unit: a scenery plus the modification times of
// the files it was parsed from, so a stale cache entry can be detected
// without reparsing.
type cacheEntry struct {
	Scenery  *Scenery
	LibJws   map[int]*LibJw
	SrcStamp string
}

func fullCachePath(name string) (string, error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "scenerymgr", "parsed", name), nil
}

// ContentStamp hashes a pack's (path, modtime, size) triples into a short
// key. It's a cheap substitute for hashing file contents: good enough to
// invalidate on pack updates or reinstalls without reading gigabytes of
// scenery on every load.
func ContentStamp(paths []string, sizes []int64, modNanos []int64) string {
	h := sha256.New()
	for i, p := range paths {
		fmt.Fprintf(h, "%s:%d:%d\n", p, sizes[i], modNanos[i])
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// CacheStoreScenery msgpack-encodes and flate-compresses a parsed Scenery
// (plus the library templates it carried, if it's the shared library
// pack) under a key derived from the source pack's own path, mirroring
// the object cache the host application uses for its own slow-to-parse
// FAA databases.
func CacheStoreScenery(key string, sc *Scenery, libs map[int]*LibJw, srcStamp string) error {
	path, err := fullCachePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.BestSpeed)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fw).Encode(&cacheEntry{Scenery: sc, LibJws: libs, SrcStamp: srcStamp}); err != nil {
		return err
	}
	return fw.Close()
}

// CacheLoadScenery returns the cached Scenery for key if present and its
// SrcStamp matches srcStamp; a stamp mismatch is reported as a cache miss,
// not an error, so the caller reparses unconditionally.
func CacheLoadScenery(key, srcStamp string) (*Scenery, map[int]*LibJw, bool, error) {
	path, err := fullCachePath(key)
	if err != nil {
		return nil, nil, false, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	var ce cacheEntry
	if err := msgpack.NewDecoder(fr).Decode(&ce); err != nil {
		return nil, nil, false, nil // corrupt cache entry: treat as a miss
	}
	if ce.SrcStamp != srcStamp {
		return nil, nil, false, nil
	}
	return ce.Scenery, ce.LibJws, true, nil
}
