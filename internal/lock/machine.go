// Package lock holds the state machine crossing typing activity with
// the verification verdict. It decides, for every keystroke and every
// authentication result, what state to move to and when a frame must be
// redrawn.
package lock

import (
	"fmt"

	"github.com/shadeos/shade/internal/anim"
	"github.com/shadeos/shade/internal/auth"
	"github.com/shadeos/shade/internal/state"
)

// Redrawer is how the machine requests frames. Requests are idempotent
// and may be coalesced by the implementation.
type Redrawer interface {
	RedrawWithState(snap state.State)
}

// Wiper instructs the authenticator to destroy buffered password bytes.
type Wiper interface {
	Wipe() error
}

// Machine owns all lock-engine state transitions. Every method runs on
// the single event thread; nothing here blocks.
type Machine struct {
	store  *state.Store
	sel    *anim.Selector
	frames int
	redraw Redrawer
	wiper  Wiper
}

func NewMachine(store *state.Store, sel *anim.Selector, frames int, redraw Redrawer, wiper Wiper) *Machine {
	return &Machine{store: store, sel: sel, frames: frames, redraw: redraw, wiper: wiper}
}

// KeyAccepted records one buffered character: the input position grows,
// the indicator goes active for this frame, a stale fail tint clears so
// it does not persist into the new attempt, and the animation cursor
// advances.
func (m *Machine) KeyAccepted() {
	snap := m.store.Snapshot()
	m.store.SetInput(snap.Input + 1)
	m.store.SetUnlock(state.KeyActive)
	if snap.Pam == state.PamWrong {
		m.store.SetPam(state.PamIdle)
	}
	if m.frames > 0 {
		m.sel.Advance(m.frames)
	}
	m.requestRedraw()
}

// KeyDeleted removes one buffered character, floored at zero. An empty
// buffer collapses straight to Started.
func (m *Machine) KeyDeleted() {
	snap := m.store.Snapshot()
	count := snap.Input - 1
	if count < 0 {
		count = 0
	}
	m.store.SetInput(count)
	if count > 0 {
		m.store.SetUnlock(state.BackspaceActive)
	} else {
		m.store.SetUnlock(state.Started)
	}
	m.requestRedraw()
}

// SettleIdle demotes the just-activated highlight once a redraw has
// been issued and no further input is pending this tick. Without it the
// highlight would persist indefinitely.
func (m *Machine) SettleIdle() {
	snap := m.store.Snapshot()
	if snap.Unlock != state.KeyActive && snap.Unlock != state.BackspaceActive {
		return
	}
	if snap.Input > 0 {
		m.store.SetUnlock(state.KeyPressed)
	} else {
		m.store.SetUnlock(state.Started)
	}
	m.requestRedraw()
}

// VerifyStarted marks a check as outstanding so the verify tint shows
// while the authenticator works.
func (m *Machine) VerifyStarted() {
	m.store.SetPam(state.PamVerify)
	m.requestRedraw()
}

// AuthResult records the authenticator's verdict. It returns true on
// success; the caller unlocks and tears the process down, so no rendered
// state exists past that point.
func (m *Machine) AuthResult(result auth.Result) (unlocked bool) {
	switch result {
	case auth.InProgress:
		m.store.SetPam(state.PamVerify)
		m.requestRedraw()
	case auth.Failure:
		m.store.SetPam(state.PamWrong)
		m.store.AddFailedAttempt()
		m.requestRedraw()
	case auth.Success:
		return true
	}
	return false
}

// ClearBuffer discards the typed input. The authenticator must confirm
// the in-memory password copy is wiped before the logical state resets;
// a wipe failure is returned and must terminate the process.
func (m *Machine) ClearBuffer() error {
	if err := m.wiper.Wipe(); err != nil {
		return fmt.Errorf("secure wipe failed: %w", err)
	}
	m.store.SetInput(0)
	m.store.SetUnlock(state.Started)
	m.requestRedraw()
	return nil
}

func (m *Machine) requestRedraw() {
	m.redraw.RedrawWithState(m.store.Snapshot())
}
