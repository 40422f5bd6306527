// scenery/scenery_test.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"strings"
	"testing"

	"github.com/samkit/scenerymgr/log"
)

const testManifest = `<?xml version="1.0"?>
<scenery name="Test Airport">
  <sets>
    <set id="1" height="4.5" wheelPos="2.0" cabinPos="10.0" cabinLength="2.0"
         minRot1="-90" maxRot1="90" minRot2="-10" maxRot2="10" minRot3="-6" maxRot3="2"
         minExtent="0" maxExtent="10" minWheels="-5" maxWheels="2"
         initialRot1="10" initialRot2="0" initialRot3="-2" initialExtent="0"/>
  </sets>
  <jetways>
    <jetway id="1" name="JetwayA" latitude="50.0" longitude="8.0" heading="90"
            forDoorLocation="LF1"/>
    <jetway id="1" name="BadOne" latitude="200.0" longitude="8.0" heading="0"/>
  </jetways>
  <datarefs>
    <dataref name="openSAM/jetway/rotate1" autoplay="false">
      <animation t="0" v="0"/>
      <animation t="1" v="90"/>
    </dataref>
  </datarefs>
  <objects>
    <instance id="beacon" latitude="50.0" longitude="8.0" elevation="0" heading="0"/>
  </objects>
  <gui>
    <checkbox label="beacon_on" title="Beacon" instance="beacon" dataref="openSAM/jetway/rotate1"/>
  </gui>
</scenery>
`

func TestParseManifest(t *testing.T) {
	lg := log.New("error", t.TempDir(), 0)
	sc, libs, err := ParseManifest(strings.NewReader(testManifest), lg)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if sc.Name != "Test Airport" {
		t.Errorf("name = %q", sc.Name)
	}
	if len(libs) != 1 || libs[1] == nil {
		t.Fatalf("expected one library template, got %d", len(libs))
	}
	if len(sc.Jetways) != 1 {
		t.Fatalf("expected the out-of-range jetway dropped, got %d jetways", len(sc.Jetways))
	}
	jw := sc.Jetways[0]
	if jw.Name != "JetwayA" || jw.Door != DoorLF1 {
		t.Errorf("unexpected jetway fields: %+v", jw)
	}
	if len(sc.AnimatedObjects) != 1 || len(sc.AnimatedObjects[0].Anims) != 1 {
		t.Fatalf("expected the beacon's checkbox to bind its animation")
	}
	if v := sc.AnimatedObjects[0].Anims[0].Eval(0.5); v != 45 {
		t.Errorf("Eval(0.5) = %v, want 45", v)
	}
	if title, ok := sc.GUIOrder.Get("beacon_on"); !ok || title != "Beacon" {
		t.Errorf("GUIOrder[beacon_on] = %v, %v, want Beacon, true", title, ok)
	}
	if keys := sc.GUIOrder.Keys(); len(keys) != 1 || keys[0] != "beacon_on" {
		t.Errorf("GUIOrder.Keys() = %v, want [beacon_on]", keys)
	}
}

func TestParseManifestEmpty(t *testing.T) {
	lg := log.New("error", t.TempDir(), 0)
	_, _, err := ParseManifest(strings.NewReader(`<scenery name="Empty"/>`), lg)
	if err != ErrEmptyScenery {
		t.Errorf("err = %v, want ErrEmptyScenery", err)
	}
}

func TestParseAptDat(t *testing.T) {
	const apt = "1302 icao_code ENRM\n" +
		"1300 50.12345 8.54321 182.5 both gate A1\r\n" +
		"1300 garbage line\n"
	lg := log.New("error", t.TempDir(), 0)
	sc := &Scenery{}
	if err := ParseAptDat(strings.NewReader(apt), sc, lg); err != nil {
		t.Fatalf("ParseAptDat: %v", err)
	}
	if sc.ICAO != "ENRM" {
		t.Errorf("icao = %q", sc.ICAO)
	}
	if len(sc.Stands) != 1 {
		t.Fatalf("expected 1 valid stand, got %d", len(sc.Stands))
	}
	if sc.Stands[0].ID != "A1" {
		t.Errorf("stand id = %q", sc.Stands[0].ID)
	}
}

func TestParseSceneryPacksINI(t *testing.T) {
	const ini = "I\n1000 Version\nSCENERY_PACK Custom Scenery/openSAM_Library/\n" +
		"SCENERY_PACK Custom Scenery/z_ao_fake/\n" +
		"SCENERY_PACK *GLOBAL_AIRPORTS*\n" +
		"SCENERY_PACK Custom Scenery/EDDF/\n"
	sp, err := ParseSceneryPacksINI(strings.NewReader(ini), "/xp")
	if err != nil {
		t.Fatalf("ParseSceneryPacksINI: %v", err)
	}
	if sp.OpenSAMLibraryPath != "/xp/Custom Scenery/openSAM_Library/" {
		t.Errorf("openSAM path = %q", sp.OpenSAMLibraryPath)
	}
	if len(sp.Paths) != 1 || sp.Paths[0] != "/xp/Custom Scenery/EDDF/" {
		t.Errorf("paths = %v", sp.Paths)
	}
}

func TestParseSceneryPacksINIMissingLibrary(t *testing.T) {
	_, err := ParseSceneryPacksINI(strings.NewReader("SCENERY_PACK Custom Scenery/EDDF/\n"), "/xp")
	if err != ErrNoLibraryPack {
		t.Errorf("err = %v, want ErrNoLibraryPack", err)
	}
}

func TestJetwayAtRestRoundTrip(t *testing.T) {
	jw := &Jetway{InitialRot1: 10, InitialRot2: -5, InitialRot3: -2, InitialExtent: 3, WheelPos: 2}
	jw.ResetToRest()
	if !jw.AtRest(0.01) {
		t.Fatalf("freshly reset jetway should be at rest")
	}
	jw.Rotate1 += 20
	jw.Locked = true
	if jw.AtRest(0.01) {
		t.Fatalf("disturbed jetway should not be at rest")
	}
}

func TestApplyLibraryTemplateOnlyFillsZero(t *testing.T) {
	tmpl := &LibJw{ID: 7, Jetway: Jetway{Height: 4.5, MaxRot1: 90}}
	jw := &Jetway{Height: 9.9} // manifest-specified height should survive
	jw.ApplyLibraryTemplate(tmpl)
	if jw.Height != 9.9 {
		t.Errorf("Height = %v, want manifest value preserved", jw.Height)
	}
	if jw.MaxRot1 != 90 {
		t.Errorf("MaxRot1 = %v, want backfilled from template", jw.MaxRot1)
	}
}

func TestComputeBBoxInflatesAndWraps(t *testing.T) {
	sc := &Scenery{Jetways: []*Jetway{{Lat: 50, Lon: 179.999}}}
	sc.BBox = computeBBox(sc)
	if !sc.InBBox(50, -179.999) {
		t.Errorf("expected bbox to straddle the antimeridian and contain the wrapped point")
	}
	if sc.InBBox(50, 0) {
		t.Errorf("expected a point far from the jetway to fall outside the bbox")
	}
}
