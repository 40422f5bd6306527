// prefs/prefs_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package prefs

import (
	"path/filepath"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	p, err := Parse("1,-2,0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.AutoSeason || p.Season != -2 || p.AutoSelectJws {
		t.Errorf("unexpected Prefs: %+v", p)
	}
	if p.String() != "1,-2,0" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("1,2"); err == nil {
		t.Errorf("expected an error for a short field list")
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "missing.prefs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Errorf("expected Default() for a missing file, got %+v", p)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.prefs")
	want := Prefs{AutoSeason: false, Season: 3, AutoSelectJws: true}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
