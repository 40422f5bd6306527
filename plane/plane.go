// plane/plane.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package plane drives the per-aircraft docking state machine: the
// polymorphic Plane contract any concrete aircraft source (the user's own
// plane, or a remote multiplayer plane) must satisfy, and the FSM that
// turns its observed state into jetway-docking decisions.
package plane

import "github.com/samkit/scenerymgr/jetway"

// Plane is a tagged variant (MyPlane, RemotePlane-*) sharing one
// interface rather than a class hierarchy. Each
// concrete Plane differs only in how it fills these observations every
// tick; the FSM in fsm.go never branches on which kind it's driving.
type Plane interface {
	// Update refreshes and returns the plane's observable state for this
	// tick: local position/heading, on-ground and beacon status, and its
	// aircraft doors expressed as DoorOffsets in the plane's body frame.
	Update(now float64) Observation

	// AutoMode reports whether SelectJws should run automatically (true)
	// or wait for a UI-driven selection (false).
	AutoMode() bool

	// DockRequested reports and clears the one-shot dock/undock/toggle
	// command inputs: the accessor clears the flag after reading it.
	DockRequested() (dock, undock, toggle bool)

	// WithAlertSound reports whether this plane should get an audible
	// docking alert (true only for the user's own plane in the reference
	// implementation).
	WithAlertSound() bool
}

// Observation is one tick's worth of plane state, as read from the host
// (MyPlane) or a multiplayer feed (RemotePlane).
type Observation struct {
	Lat, Lon       float32
	X, Z           float64
	Psi            float32
	Y              float64 // door sill height reference
	OnGround       bool
	BeaconOn       bool
	RefGen         uint32
	Doors          []jetway.DoorOffset
	ParkBrakeSet   bool
}
