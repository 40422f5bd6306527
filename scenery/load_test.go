// scenery/load_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/samkit/scenerymgr/log"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestLoadFailsOnUnparseableLibraryPack checks that a mandatory
// openSAM_Library pack whose sam.xml fails to parse is a fatal Load error,
// not a logged warning.
func TestLoadFailsOnUnparseableLibraryPack(t *testing.T) {
	xpDir := t.TempDir()
	libPath := path.Join(xpDir, "Custom Scenery", "openSAM_Library")
	writeFile(t, path.Join(xpDir, "Custom Scenery", "scenery_packs.ini"),
		"I\n1000 Version\nSCENERY\n\nSCENERY_PACK "+libPath+"/\n")
	writeFile(t, path.Join(libPath, "sam.xml"), "this is not valid xml<<<")

	lg := log.New("error", t.TempDir(), 0)
	reg, err := Load(xpDir, lg)
	if err == nil {
		t.Fatalf("Load() returned no error for an unparseable mandatory library pack")
	}
	if reg != nil {
		t.Errorf("Load() returned a non-nil Registry alongside an error")
	}
}

// TestLoadFailsOnMissingLibraryPack checks the already-fatal ini-level
// absence case still behaves the same way, for contrast with the
// parse-failure case above.
func TestLoadFailsOnMissingLibraryPack(t *testing.T) {
	xpDir := t.TempDir()
	writeFile(t, path.Join(xpDir, "Custom Scenery", "scenery_packs.ini"),
		"I\n1000 Version\nSCENERY\n\n")

	lg := log.New("error", t.TempDir(), 0)
	if _, err := Load(xpDir, lg); err == nil {
		t.Fatalf("Load() returned no error with no openSAM_Library pack listed")
	}
}
