// surface/surface.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package surface is the dataref/command registration surface (the
// sam/opensam dataref tree and the openSAM/* commands). It's a method
// table keyed by dataref/command name rather than a reflect-based
// dispatcher, so the per-frame hit path stays allocation-free: a single
// map lookup plus a direct call.
package surface

import "fmt"

// DatarefReader returns the current scalar value of one dataref.
type DatarefReader func() float64

// DatarefArrayReader returns the current value of one array dataref.
type DatarefArrayReader func() []float64

// CommandHandler runs one host command (dock_jwy, undock_jwy, ...).
// phase distinguishes X-Plane-style begin/continue/end command phases;
// most commands here act only on phase == 0 (begin).
type CommandHandler func(phase int)

// Surface is the registration table the host binds its dataref/command
// callbacks through.
type Surface struct {
	scalars map[string]DatarefReader
	arrays  map[string]DatarefArrayReader
	writers map[string]func(float64)
	cmds    map[string]CommandHandler
}

// New builds an empty Surface.
func New() *Surface {
	return &Surface{
		scalars: make(map[string]DatarefReader),
		arrays:  make(map[string]DatarefArrayReader),
		writers: make(map[string]func(float64)),
		cmds:    make(map[string]CommandHandler),
	}
}

// RegisterScalar binds a read-only scalar dataref (e.g.
// "sam/jetway/rotate1" or its per-library "sam/jetway/<libId>/rotate1"
// variant).
func (s *Surface) RegisterScalar(name string, r DatarefReader) {
	s.scalars[name] = r
}

// RegisterWritable binds a dataref the host may also write (none of the
// current surface needs this, but library templates or a future
// brightness control might).
func (s *Surface) RegisterWritable(name string, r DatarefReader, w func(float64)) {
	s.scalars[name] = r
	s.writers[name] = w
}

// RegisterArray binds an array dataref (e.g. "opensam/jetway/door/status").
func (s *Surface) RegisterArray(name string, r DatarefArrayReader) {
	s.arrays[name] = r
}

// RegisterCommand binds a host command.
func (s *Surface) RegisterCommand(name string, h CommandHandler) {
	s.cmds[name] = h
}

// ReadScalar is the per-frame hit path: a single map lookup plus a direct
// call, no reflection or allocation.
func (s *Surface) ReadScalar(name string) (float64, bool) {
	r, ok := s.scalars[name]
	if !ok {
		return 0, false
	}
	return r(), true
}

// ReadArray is ReadScalar's array-dataref counterpart.
func (s *Surface) ReadArray(name string) ([]float64, bool) {
	r, ok := s.arrays[name]
	if !ok {
		return nil, false
	}
	return r(), true
}

// Write delivers a host write to a writable dataref; it's a caller error
// (reported as a returned error, not a panic) to write a dataref that wasn't registered
// writable.
func (s *Surface) Write(name string, v float64) error {
	w, ok := s.writers[name]
	if !ok {
		return fmt.Errorf("surface: %q is not a writable dataref", name)
	}
	w(v)
	return nil
}

// Dispatch runs a registered command, reporting whether one was found.
func (s *Surface) Dispatch(name string, phase int) bool {
	h, ok := s.cmds[name]
	if !ok {
		return false
	}
	h(phase)
	return true
}
