// scenery/parse_xml.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/iancoleman/orderedmap"

	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
)

// xmlManifest mirrors the sam.xml wire schema via struct tags (nested
// anonymous structs keyed by element name) rather than a SAX-style
// element walk; Go's XML decoder makes the declarative form just as
// direct and considerably shorter.
type xmlManifest struct {
	XMLName xml.Name    `xml:"scenery"`
	Name    string      `xml:"name,attr"`
	Jetways xmlJetways  `xml:"jetways"`
	Sets    xmlSets     `xml:"sets"`
	Drefs   xmlDatarefs `xml:"datarefs"`
	Objects xmlObjects  `xml:"objects"`
	GUI     xmlGUI      `xml:"gui"`
}

type xmlJetways struct {
	Jetway []xmlJetway `xml:"jetway"`
}

type xmlSets struct {
	Set []xmlJetway `xml:"set"`
}

// xmlJetway covers both a <jetway> instance and a <set> library template;
// the two share every attribute in the original schema.
type xmlJetway struct {
	ID               int     `xml:"id,attr"`
	Name             string  `xml:"name,attr"`
	Latitude         float32 `xml:"latitude,attr"`
	Longitude        float32 `xml:"longitude,attr"`
	Heading          float32 `xml:"heading,attr"`
	Height           float32 `xml:"height,attr"`
	WheelPos         float32 `xml:"wheelPos,attr"`
	CabinPos         float32 `xml:"cabinPos,attr"`
	CabinLength      float32 `xml:"cabinLength,attr"`
	WheelDiameter    float32 `xml:"wheelDiameter,attr"`
	WheelDistance    float32 `xml:"wheelDistance,attr"`
	Sound            string  `xml:"sound,attr"`
	MinRot1          float32 `xml:"minRot1,attr"`
	MaxRot1          float32 `xml:"maxRot1,attr"`
	MinRot2          float32 `xml:"minRot2,attr"`
	MaxRot2          float32 `xml:"maxRot2,attr"`
	MinRot3          float32 `xml:"minRot3,attr"`
	MaxRot3          float32 `xml:"maxRot3,attr"`
	MinExtent        float32 `xml:"minExtent,attr"`
	MaxExtent        float32 `xml:"maxExtent,attr"`
	MinWheels        float32 `xml:"minWheels,attr"`
	MaxWheels        float32 `xml:"maxWheels,attr"`
	InitialRot1      float32 `xml:"initialRot1,attr"`
	InitialRot2      float32 `xml:"initialRot2,attr"`
	InitialRot3      float32 `xml:"initialRot3,attr"`
	InitialExtent    float32 `xml:"initialExtent,attr"`
	ForDoorLocation  string  `xml:"forDoorLocation,attr"`
}

type xmlDatarefs struct {
	Dataref []xmlDataref `xml:"dataref"`
}

type xmlDataref struct {
	Name             string         `xml:"name,attr"`
	Autoplay         bool           `xml:"autoplay,attr"`
	RandomizePhase   bool           `xml:"randomize_phase,attr"`
	AugmentWindSpeed bool           `xml:"augment_wind_speed,attr"`
	Animation        []xmlAnimation `xml:"animation"`
}

type xmlAnimation struct {
	T float32 `xml:"t,attr"`
	V float32 `xml:"v,attr"`
}

type xmlObjects struct {
	Instance []xmlInstance `xml:"instance"`
}

type xmlInstance struct {
	ID        string  `xml:"id,attr"`
	Latitude  float32 `xml:"latitude,attr"`
	Longitude float32 `xml:"longitude,attr"`
	Elevation float32 `xml:"elevation,attr"`
	Heading   float32 `xml:"heading,attr"`
}

type xmlGUI struct {
	Checkbox []xmlCheckbox `xml:"checkbox"`
}

// xmlCheckbox is the menu entry binding one AnimatedObject's toggle to a
// dataref curve. The order of the checkbox elements (each label mapped to
// its title) is preserved in GUIOrder on the decoded Scenery so a
// settings-menu renderer can lay checkboxes out the way the pack author
// wrote them, not in map-iteration order.
type xmlCheckbox struct {
	Label    string `xml:"label,attr"`
	Title    string `xml:"title,attr"`
	Instance string `xml:"instance,attr"`
	Dataref  string `xml:"dataref,attr"`
}

// ParseManifest decodes one sam.xml document into a Scenery plus the
// library jetway templates it defines under <sets>, if any (most packs
// only define <sets> in the shared openSAM_Library/sam.xml). Jetways with
// out-of-range coordinates are dropped and logged, a sanity check for
// known-bad packs like Aerosoft LEBL.
func ParseManifest(r io.Reader, lg *log.Logger) (*Scenery, map[int]*LibJw, error) {
	dec := xml.NewDecoder(r)
	var m xmlManifest
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnparseableRoot, err)
	}

	sc := &Scenery{Name: m.Name, GUIOrder: orderedmap.New()}
	libs := make(map[int]*LibJw, len(m.Sets.Set))

	drfByName := make(map[string]*Animation, len(m.Drefs.Dataref))
	for _, d := range m.Drefs.Dataref {
		if d.Name == "" {
			lg.Warn("dataref with no name attribute, skipped")
			continue
		}
		if _, dup := drfByName[d.Name]; dup {
			lg.Warn("duplicate dataref definition, ignored", "name", d.Name)
			continue
		}
		a := &Animation{
			Dataref:          d.Name,
			Autoplay:         d.Autoplay,
			RandomizePhase:   d.RandomizePhase,
			AugmentWindSpeed: d.AugmentWindSpeed,
		}
		for _, kv := range d.Animation {
			if n := len(a.Keys); n > 0 && a.Keys[n-1].T == kv.T {
				a.Keys[n-1].V = kv.V
			} else {
				a.Keys = append(a.Keys, AnimKey{T: kv.T, V: kv.V})
			}
		}
		if len(a.Keys) < 2 {
			lg.Warn("too few animation entries", "dataref", d.Name)
		}
		drfByName[d.Name] = a
	}

	for _, t := range m.Sets.Set {
		jw := jetwayFromXML(t)
		if _, dup := libs[t.ID]; dup {
			lg.Warn("duplicate library jetway template id", "id", t.ID)
		}
		libs[t.ID] = &LibJw{ID: t.ID, Jetway: jw}
	}

	for _, j := range m.Jetways.Jetway {
		if j.Latitude < -85 || j.Latitude > 85 || j.Longitude < -180 || j.Longitude > 180 {
			lg.Warn("jetway with invalid lat/lon, ignored", "name", j.Name, "lat", j.Latitude, "lon", j.Longitude)
			continue
		}
		jw := jetwayFromXML(j)
		sc.Jetways = append(sc.Jetways, &jw)
	}

	objIndex := make(map[string]int, len(m.Objects.Instance))
	for _, o := range m.Objects.Instance {
		objIndex[o.ID] = len(sc.AnimatedObjects)
		sc.AnimatedObjects = append(sc.AnimatedObjects, &AnimatedObject{
			Lat:       o.Latitude,
			Lon:       o.Longitude,
			Elevation: o.Elevation,
			Heading:   o.Heading,
		})
	}

	for _, cb := range m.GUI.Checkbox {
		oi, objOK := objIndex[cb.Instance]
		a, drfOK := drfByName[cb.Dataref]
		if !objOK || !drfOK {
			lg.Warn("checkbox references unknown object or dataref", "instance", cb.Instance, "dataref", cb.Dataref)
			continue
		}
		sc.AnimatedObjects[oi].Anims = append(sc.AnimatedObjects[oi].Anims, a)
		sc.GUIOrder.Set(cb.Label, cb.Title)
	}

	if len(sc.Jetways) == 0 && len(sc.Stands) == 0 && len(sc.AnimatedObjects) == 0 && len(libs) == 0 {
		return nil, nil, ErrEmptyScenery
	}

	sc.BBox = computeBBox(sc)
	return sc, libs, nil
}

func jetwayFromXML(x xmlJetway) Jetway {
	jw := Jetway{
		Name:          x.Name,
		LibraryID:     x.ID,
		Sound:         x.Sound,
		Lat:           x.Latitude,
		Lon:           x.Longitude,
		Heading:       math.RA(x.Heading),
		Height:        x.Height,
		WheelPos:      x.WheelPos,
		CabinPos:      x.CabinPos,
		CabinLength:   x.CabinLength,
		WheelDiameter: x.WheelDiameter,
		WheelDistance: x.WheelDistance,
		MinRot1:       x.MinRot1,
		MaxRot1:       x.MaxRot1,
		MinRot2:       x.MinRot2,
		MaxRot2:       x.MaxRot2,
		MinRot3:       x.MinRot3,
		MaxRot3:       x.MaxRot3,
		MinExtent:     x.MinExtent,
		MaxExtent:     x.MaxExtent,
		MinWheels:     x.MinWheels,
		MaxWheels:     x.MaxWheels,
		InitialRot1:   x.InitialRot1,
		InitialRot2:   x.InitialRot2,
		InitialRot3:   x.InitialRot3,
		InitialExtent: x.InitialExtent,
		Door:          ParseDoorLocation(x.ForDoorLocation),
		StandIndex:    -1,
	}
	jw.Rotate1, jw.Rotate2, jw.Rotate3 = jw.InitialRot1, jw.InitialRot2, jw.InitialRot3
	jw.Extent = jw.InitialExtent
	jw.Wheels = math.Tan(math.Radians(jw.InitialRot3)) * (jw.WheelPos + jw.InitialExtent)
	return jw
}

// sortAnimKeys orders keys by T. Nothing in the package calls it: the
// parser above emits keys in document order, which the reference
// implementation assumes is sorted.
func sortAnimKeys(keys []AnimKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].T < keys[j].T })
}
