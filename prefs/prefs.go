// prefs/prefs.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package prefs reads and writes the single-line preferences file:
// "auto_season,season,auto_select_jws" as three comma-separated integers.
// The format is fixed and three fields wide, so this is a direct stdlib
// parse rather than a general config library; see DESIGN.md's
// ambient-stack entry for why.
package prefs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Prefs is the decoded preferences file. Southern-hemisphere operation is
// encoded by a negated Season.
type Prefs struct {
	AutoSeason   bool
	Season       int // -4..4; negative = southern hemisphere
	AutoSelectJws bool
}

// Default returns the preferences a fresh install starts with.
func Default() Prefs {
	return Prefs{AutoSeason: true, Season: 0, AutoSelectJws: true}
}

// Load reads and parses the preferences file at path. A missing file is
// not an error: it returns Default().
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Prefs{}, err
	}
	return Parse(string(data))
}

// Parse decodes the preferences file's one line.
func Parse(line string) (Prefs, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Prefs{}, fmt.Errorf("prefs: expected 3 comma-separated fields, got %d", len(fields))
	}
	autoSeason, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Prefs{}, fmt.Errorf("prefs: auto_season: %w", err)
	}
	season, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Prefs{}, fmt.Errorf("prefs: season: %w", err)
	}
	autoSelect, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Prefs{}, fmt.Errorf("prefs: auto_select_jws: %w", err)
	}
	return Prefs{
		AutoSeason:    autoSeason != 0,
		Season:        season,
		AutoSelectJws: autoSelect != 0,
	}, nil
}

// String renders Prefs back to the file's one-line wire format.
func (p Prefs) String() string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("%d,%d,%d", b(p.AutoSeason), p.Season, b(p.AutoSelectJws))
}

// Save writes Prefs to path in the fixed wire format.
func Save(path string, p Prefs) error {
	return os.WriteFile(path, []byte(p.String()+"\n"), 0644)
}
