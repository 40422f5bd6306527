// scenery/load.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"os"
	"path"

	"github.com/samkit/scenerymgr/log"
)

// Load builds a Registry from an X-Plane installation: it reads
// Custom Scenery/scenery_packs.ini, parses the shared library pack first
// (its <sets> templates must be known before any instance pack references
// them, matching the reference loader's ordering requirement), then every
// other scenery pack's sam.xml and apt.dat, using the on-disk parse cache
// to skip packs that haven't changed since they were last loaded.
func Load(xpDir string, lg *log.Logger) (*Registry, error) {
	iniPath := path.Join(xpDir, "Custom Scenery", "scenery_packs.ini")
	f, err := os.Open(iniPath)
	if err != nil {
		return nil, err
	}
	sp, err := ParseSceneryPacksINI(f, xpDir)
	f.Close()
	if err != nil {
		return nil, err
	}

	reg := NewRegistry(lg)

	sc, libs, err := loadPack(sp.OpenSAMLibraryPath, lg)
	if err != nil {
		// openSAM_Library is mandatory (parse_packs.go already rejected its
		// absence from scenery_packs.ini as ErrNoLibraryPack): a present but
		// unparseable sam.xml is just as fatal, since no instance pack's
		// library-id jetways can be resolved without its <sets> templates.
		return nil, err
	}
	reg.AddScenery(sc, libs)

	if sp.SAMLibraryPath != "" {
		sc, libs, err := loadPack(sp.SAMLibraryPath, lg)
		if err != nil {
			lg.Warn("failed to load SAM1-compat library pack", "path", sp.SAMLibraryPath, "err", err)
		} else {
			reg.AddScenery(sc, libs)
		}
	}

	for _, p := range sp.Paths {
		sc, libs, err := loadPack(p, lg)
		if err != nil {
			lg.Debug("pack has no sam.xml, skipped", "path", p, "err", err)
			continue
		}
		reg.AddScenery(sc, libs)
	}

	return reg, nil
}

// loadPack parses one pack's sam.xml (and, if present, apt.dat), going
// through the msgpack/flate parse cache keyed by the pack's own modtime
// stamp before falling back to parsing from scratch.
func loadPack(packPath string, lg *log.Logger) (*Scenery, map[int]*LibJw, error) {
	xmlPath := path.Join(packPath, "sam.xml")
	fi, err := os.Stat(xmlPath)
	if err != nil {
		return nil, nil, err
	}
	stamp := ContentStamp([]string{xmlPath}, []int64{fi.Size()}, []int64{fi.ModTime().UnixNano()})
	cacheKey := cacheKeyFor(packPath)

	if sc, libs, ok, err := CacheLoadScenery(cacheKey, stamp); err == nil && ok {
		lg.Debug("scenery parse cache hit", "path", packPath)
		return sc, libs, nil
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, nil, err
	}
	sc, libs, err := ParseManifest(f, lg)
	f.Close()
	if err != nil {
		return nil, nil, err
	}

	if apt, err := os.Open(findAptDat(packPath)); err == nil {
		err := ParseAptDat(apt, sc, lg)
		apt.Close()
		if err != nil {
			lg.Warn("error parsing apt.dat", "path", packPath, "err", err)
		}
		sc.BBox = computeBBox(sc)
	}

	if err := CacheStoreScenery(cacheKey, sc, libs, stamp); err != nil {
		lg.Warn("failed to write scenery parse cache", "path", packPath, "err", err)
	}
	return sc, libs, nil
}

func findAptDat(packPath string) string {
	return path.Join(packPath, "Earth nav data", "apt.dat")
}

func cacheKeyFor(packPath string) string {
	h := ContentStamp([]string{packPath}, []int64{0}, []int64{0})
	return h + ".scenery"
}
