// cmd/samsim/main.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// samsim scripts a single aircraft through a full dock/undock cycle
// against one zero-config jetway without a live simulator attached. It is
// the module's integration entry point: it builds a jetway.Accessor, a
// dgs.DGS, an mp.Orchestrator, a sched.Scheduler, and a surface.Surface
// wired to the same scenery.Registry and plane.FSM, registers the real
// dataref/command names against them, and drives every subsystem through
// Scheduler.Tick rather than calling any one state machine directly. A
// fakeHost and a hand-placed Registry stand in for the live simulator.
package main

import (
	"flag"
	"fmt"

	"github.com/samkit/scenerymgr/dgs"
	"github.com/samkit/scenerymgr/host"
	"github.com/samkit/scenerymgr/jetway"
	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
	"github.com/samkit/scenerymgr/mp"
	"github.com/samkit/scenerymgr/plane"
	"github.com/samkit/scenerymgr/prefs"
	"github.com/samkit/scenerymgr/scenery"
	"github.com/samkit/scenerymgr/sched"
	"github.com/samkit/scenerymgr/surface"
)

var (
	ticks    = flag.Int("ticks", 400, "maximum number of 0.1s ticks to run before giving up")
	verbose  = flag.Bool("v", false, "print every state transition, not just the summary")
	logLevel = flag.String("loglevel", "warn", "logging level passed to the state machines")
)

// scriptedPlane is a hand-driven plane.Plane: the main loop below flips
// its fields to walk it through parked -> docked -> undocked, the same
// inputs a real MyPlane binding would read off the host's own plane
// datarefs and UI command buttons. The dock/undock/toggle flags are only
// ever set through surf.Dispatch, matching how a live host's command
// callbacks would reach it; obs is set directly by the main loop.
type scriptedPlane struct {
	obs plane.Observation

	dock, undock, toggle bool
}

func (p *scriptedPlane) Update(now float64) plane.Observation { return p.obs }
func (p *scriptedPlane) AutoMode() bool                        { return true }
func (p *scriptedPlane) WithAlertSound() bool                  { return true }

func (p *scriptedPlane) DockRequested() (dock, undock, toggle bool) {
	dock, undock, toggle = p.dock, p.undock, p.toggle
	p.dock, p.undock, p.toggle = false, false, false
	return
}

// fakeHost is an identity-mapped host.Host: local coordinates equal world
// coordinates, terrain is flat at y=0, and instanced objects/alerts are
// no-ops. Good enough to drive the state machines without a simulator.
type fakeHost struct{ now float64 }

func (h *fakeHost) RefGen() uint32                                  { return 1 }
func (h *fakeHost) ProbeElevation(x, z float64) (float64, bool)      { return 0, true }
func (h *fakeHost) WorldToLocal(lat, lon float64) (float64, float64) { return lat, lon }
func (h *fakeHost) LocalToWorld(x, z float64) (float64, float64)     { return x, z }
func (h *fakeHost) Now() float64                                     { return h.now }
func (h *fakeHost) StartAlert(p host.LocalPoint) host.AudioChannel {
	return noopChannel{}
}
func (h *fakeHost) PlaceInstance(name string, pos host.LocalPoint, psi float32) host.InstancedObject {
	return noopInstance{}
}

type noopChannel struct{}

func (noopChannel) Stop() {}

type noopInstance struct{}

func (noopInstance) Remove() {}

// standFrame is the single stand this demo tracks: its centerline is the
// plane's own parked heading, so the nose wheel track converges on (0,0)
// as the scripted approach reaches the gate.
func standFrame() *scenery.Stand {
	st := scenery.NewStand("STAND1", 0, 0, 0)
	st.StandX, st.StandY, st.StandZ = 0, 0, 0
	return st
}

// trackFor derives a dgs.Track from the plane's current observation: the
// main wheel position is approximated as 6 m behind the nose wheel along
// the stand centerline, since Observation carries only the single
// reference point a real MyPlane binding would read off gear datarefs.
func trackFor(st *scenery.Stand, obs plane.Observation) dgs.Track {
	nwX, nwZ := st.ToStandFrame(obs.X, obs.Z)
	return dgs.Track{
		NwX: nwX, NwZ: nwZ,
		MwX: nwX, MwZ: nwZ - 6,
		Heading: math.RA(obs.Psi - st.Hdgt),
	}
}

// wiring bundles every subsystem the scheduler and surface are built
// against, so buildSurface and buildScheduler can close over one value
// instead of a long parameter list.
type wiring struct {
	reg  *scenery.Registry
	acc  *jetway.Accessor
	fsm  *plane.FSM
	p    *scriptedPlane
	dgs  *dgs.DGS
	st   *scenery.Stand
	orch *mp.Orchestrator
	mpAd *mp.TestAdapter
	prf  prefs.Prefs
	jw   *scenery.Jetway
	libJw int
	h    host.Host

	lastGuidance dgs.Guidance
	mpEnabled    bool
}

// buildScheduler registers every subsystem in the order the plane state
// machine expects to observe them: plane first, DGS second (so it reacts
// to this tick's plane position), multiplayer last.
func buildScheduler(w *wiring, dt float64) *sched.Scheduler {
	s := sched.New()

	s.Register("plane", sched.SubsystemFunc(func(now float64) float64 {
		return w.fsm.Tick(w.reg, w.h, now, dt)
	}))

	s.Register("dgs", sched.SubsystemFunc(func(now float64) float64 {
		obs := w.p.obs
		w.dgs.OnGroundChanged(obs.OnGround, w.h)
		w.dgs.FindNearestStand(w.reg, obs.Lat, obs.Lon, obs.Psi, obs.X, obs.Z, now)
		tr := trackFor(w.st, obs)
		marshallerPos := host.LocalPoint{X: w.jw.X - 5, Z: w.jw.Z - 10}
		stairsPos := host.LocalPoint{X: w.jw.X + 5, Z: w.jw.Z - 10}
		w.lastGuidance = w.dgs.Tick(now, tr, obs.BeaconOn, obs.ParkBrakeSet, true, w.h, marshallerPos, stairsPos, obs.Psi)
		return 0.1
	}))

	s.Register("multiplayer", sched.SubsystemFunc(func(now float64) float64 {
		if w.mpEnabled {
			w.orch.Tick(w.reg, w.h, now, dt)
		}
		return 0.1
	}))

	return s
}

// buildSurface registers the real dataref and command names the host
// would bind: the per-jetway sam/jetway/* tree (and its per-library-id
// alias), the opensam/jetway/* door/docking summary, the opensam/dgs/*
// and SAM1-compat sam/docking/* guidance tree, sam/season/*, and the
// openSAM/* commands. Every reader closes over w, so a later Resolve
// repointing w.jw would be picked up without re-registering anything.
func buildSurface(w *wiring) *surface.Surface {
	surf := surface.New()

	registerJetwayTree := func(prefix string) {
		surf.RegisterScalar(prefix+"rotate1", func() float64 { return float64(w.jw.Rotate1) })
		surf.RegisterScalar(prefix+"rotate2", func() float64 { return float64(w.jw.Rotate2) })
		surf.RegisterScalar(prefix+"rotate3", func() float64 { return float64(w.jw.Rotate3) })
		surf.RegisterScalar(prefix+"extent", func() float64 { return float64(w.jw.Extent) })
		surf.RegisterScalar(prefix+"wheelrotatec", func() float64 { return float64(w.jw.WheelRotateC) })
		surf.RegisterScalar(prefix+"wheelrotatel", func() float64 { return float64(w.jw.WheelRotateL) })
		surf.RegisterScalar(prefix+"wheelrotater", func() float64 { return float64(w.jw.WheelRotateR) })
		surf.RegisterScalar(prefix+"wheels", func() float64 { return float64(w.jw.Wheels) })
		surf.RegisterScalar(prefix+"warnlight", func() float64 { return float64(w.jw.WarnLight) })
	}
	registerJetwayTree("sam/jetway/")
	registerJetwayTree(fmt.Sprintf("sam/jetway/%d/", w.libJw))

	surf.RegisterScalar("opensam/jetway/number", func() float64 { return float64(w.fsm.JetwaysDocked()) })
	surf.RegisterScalar("opensam/jetway/status", func() float64 {
		switch w.fsm.State {
		case plane.StateCanDock:
			return 1
		case plane.StateDocked:
			return 2
		case plane.StateDocking, plane.StateUndocking, plane.StateCantDock:
			return -1
		}
		return 0
	})
	surf.RegisterArray("opensam/jetway/door/status", func() []float64 {
		status := make([]float64, len(w.p.obs.Doors))
		if w.fsm.JetwaysDocked() > 0 && len(status) > 0 {
			status[0] = 1
		}
		return status
	})

	surf.RegisterScalar("opensam/dgs/status", func() float64 { return float64(w.lastGuidance.Status) })
	surf.RegisterScalar("opensam/dgs/distance", func() float64 { return float64(w.lastGuidance.Distance) })
	surf.RegisterScalar("opensam/dgs/distance_0", func() float64 { return float64(w.lastGuidance.Distance0) })
	surf.RegisterScalar("opensam/dgs/distance_01", func() float64 { return float64(w.lastGuidance.Distance01) })
	surf.RegisterScalar("opensam/dgs/xtrack", func() float64 { return float64(w.lastGuidance.XTrack) })
	surf.RegisterScalar("opensam/dgs/track", func() float64 { return float64(w.lastGuidance.Track) })
	surf.RegisterScalar("opensam/dgs/lr", func() float64 { return float64(w.lastGuidance.LR) })

	// sam/docking/* mirrors the same guidance for SAM1-compatible VDGS
	// models, which read the legacy dataref tree instead of opensam/dgs/*.
	surf.RegisterScalar("sam/docking/status", func() float64 { return float64(w.lastGuidance.Status) })
	surf.RegisterScalar("sam/docking/lr", func() float64 { return float64(w.lastGuidance.LR) })

	surf.RegisterScalar("sam/season/auto_season", func() float64 {
		if w.prf.AutoSeason {
			return 1
		}
		return 0
	})
	surf.RegisterScalar("sam/season/season", func() float64 { return float64(w.prf.Season) })

	surf.RegisterCommand("openSAM/dock_jwy", func(phase int) {
		if phase == 0 {
			w.p.dock = true
		}
	})
	surf.RegisterCommand("openSAM/undock_jwy", func(phase int) {
		if phase == 0 {
			w.p.undock = true
		}
	})
	surf.RegisterCommand("openSAM/toggle_jwy", func(phase int) {
		if phase == 0 {
			w.p.toggle = true
		}
	})
	surf.RegisterCommand("openSAM/activate", func(phase int) {
		if phase == 0 {
			w.dgs.OnGroundChanged(w.dgs.State == dgs.StateInactive, w.h)
		}
	})
	surf.RegisterCommand("openSAM/ToggleUI", func(phase int) {
		// Rendering a settings window is the host's own job (host.Host has
		// no UI surface); this binding exists only so the command name
		// resolves instead of falling through to Surface.Dispatch's
		// not-found path.
	})
	surf.RegisterCommand("openSAM/toggle_multiplayer", func(phase int) {
		if phase != 0 {
			return
		}
		w.mpEnabled = !w.mpEnabled
		if w.mpEnabled {
			w.orch.SetAdapter(w.mpAd)
		} else {
			w.orch.SetAdapter(nil)
		}
	})

	return surf
}

func main() {
	flag.Parse()
	lg := log.New(*logLevel, "", 0)

	reg := scenery.NewRegistry(lg)
	const libID = 1
	reg.LibJws[libID] = &scenery.LibJw{
		ID: libID,
		Jetway: scenery.Jetway{
			CabinPos: 2, CabinLength: 6, WheelPos: 1,
			WheelDiameter: 0.5, WheelDistance: 2, Height: 4,
			MinRot1: -180, MaxRot1: 180,
			MinRot2: -180, MaxRot2: 180,
			MinRot3: -90, MaxRot3: 90,
			MinExtent: 0, MaxExtent: 100,
			MinWheels: -90, MaxWheels: 90,
		},
	}

	jw := reg.NewZeroConfigJetway(libID, -15, 0, 25, -90, nil, -1)
	jw.Door = scenery.DoorLF1
	jw.InitialRot1 = -90
	jw.InitialRot2, jw.InitialRot3, jw.InitialExtent = 0, 0, 0
	jw.ResetToRest()

	p := &scriptedPlane{obs: plane.Observation{
		X: 0, Z: 0, Psi: 0, RefGen: 1, OnGround: false,
		Doors: []jetway.DoorOffset{{X: -2, Z: 5}},
	}}
	fsm := plane.NewFSM(p, lg)
	h := &fakeHost{}

	acc := jetway.NewAccessor(reg, lg)
	// Resolving the jetway through the same Accessor a live host's draw
	// callback would use, rather than reaching for jw directly, proves the
	// accessor is actually on the path from a host draw call to a
	// scenery.Jetway before any surface binding touches its fields.
	resolved := acc.Resolve(h, host.DrawObject{Pos: host.LocalPoint{X: jw.X, Y: jw.Y, Z: jw.Z}, Psi: float32(jw.Psi), LibID: libID}, 0, 0)
	if resolved != nil {
		jw = resolved
	}

	dgsInst := dgs.New(true, true, lg)
	orch := mp.New(lg)
	mpAdapter := mp.NewTestAdapter()
	mpAdapter.AddPlane(0, 0, -200, -200, 45, "A320")

	w := &wiring{
		reg: reg, acc: acc, fsm: fsm, p: p, dgs: dgsInst, st: standFrame(),
		orch: orch, mpAd: mpAdapter, prf: prefs.Default(), jw: jw, libJw: libID, h: h,
	}

	const dt = 0.1
	surf := buildSurface(w)
	scheduler := buildScheduler(w, dt)

	fmt.Println("samsim: scripting one aircraft through dock/undock against a zero-config jetway")

	now := 0.0
	lastState := fsm.State
	phase := "approach"

	for i := 0; i < *ticks; i++ {
		switch phase {
		case "approach":
			if now > 1 {
				p.obs.OnGround = true
				phase = "parked"
			}
		case "parked":
			if fsm.State == plane.StateCanDock {
				surf.Dispatch("openSAM/dock_jwy", 0)
				phase = "docking"
			}
		case "docking":
			if fsm.State == plane.StateDocked {
				phase = "docked"
				n, _ := surf.ReadScalar("opensam/jetway/number")
				fmt.Printf("[t=%.1fs] docked: %.0f jetway(s) in DOCKED phase\n", now, n)
			}
		case "docked":
			if now > 10 {
				surf.Dispatch("openSAM/undock_jwy", 0)
				phase = "undocking"
			}
		case "undocking":
			if fsm.State == plane.StateIdle {
				phase = "done"
			}
		case "done":
			fmt.Printf("[t=%.1fs] undocked, jetway at rest: %v\n", now, jw.AtRest(0.1))
			return
		}

		delay := scheduler.Tick(now)
		if *verbose && fsm.State != lastState {
			rot1, _ := surf.ReadScalar("sam/jetway/rotate1")
			fmt.Printf("[t=%.1fs] plane state -> %d (rotate1=%.1f)\n", now, fsm.State, rot1)
			lastState = fsm.State
		}
		_ = delay
		now += dt
		h.now = now
	}

	fmt.Println("samsim: did not reach a terminal state within the tick budget")
}
