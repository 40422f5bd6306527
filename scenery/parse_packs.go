// scenery/parse_packs.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"bufio"
	"io"
	"path"
	"strings"
)

// SceneryPacks is the ordered, filtered view of Custom Scenery/scenery_packs.ini:
// the shared library packs split out by name, and every remaining scenery
// pack path in the order X-Plane will load them.
type SceneryPacks struct {
	OpenSAMLibraryPath string
	SAMLibraryPath     string
	Paths              []string
}

// ParseSceneryPacksINI reads scenery_packs.ini (already opened by the
// caller, rooted at xpDir), resolving relative SCENERY_PACK lines against
// xpDir and skipping the X-Plane global-airports pseudo-pack and
// AutoOrtho's placeholder "z_ao_*" packs, which claim to exist but error
// on read.
func ParseSceneryPacksINI(r io.Reader, xpDir string) (*SceneryPacks, error) {
	sp := &SceneryPacks{}
	sca := bufio.NewScanner(r)
	sca.Buffer(make([]byte, 0, 4096), 1<<20)
	for sca.Scan() {
		line := sca.Text()
		if i := strings.IndexByte(line, '\r'); i >= 0 {
			line = line[:i]
		}

		rest, ok := strings.CutPrefix(line, "SCENERY_PACK ")
		if !ok || strings.Contains(line, "*GLOBAL_AIRPORTS*") {
			continue
		}
		if strings.Contains(rest, "/z_ao_") {
			continue
		}

		rest = strings.ReplaceAll(rest, "\\", "/")

		var scPath string
		if strings.HasPrefix(rest, "/") || strings.Contains(rest, ":") {
			scPath = rest
		} else {
			scPath = path.Join(xpDir, rest)
			if strings.HasSuffix(rest, "/") {
				scPath += "/"
			}
		}

		switch {
		case strings.Contains(scPath, "/openSAM_Library/"):
			sp.OpenSAMLibraryPath = scPath
		case strings.Contains(scPath, "/SAM_Library/"):
			sp.SAMLibraryPath = scPath
		default:
			sp.Paths = append(sp.Paths, scPath)
		}
	}
	if err := sca.Err(); err != nil {
		return nil, err
	}
	if sp.OpenSAMLibraryPath == "" {
		return nil, ErrNoLibraryPack
	}
	return sp, nil
}
