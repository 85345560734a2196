package lock

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadeos/shade/internal/anim"
	"github.com/shadeos/shade/internal/auth"
	"github.com/shadeos/shade/internal/state"
)

type recordingRedrawer struct {
	calls []state.State
}

func (r *recordingRedrawer) RedrawWithState(snap state.State) {
	r.calls = append(r.calls, snap)
}

type fakeWiper struct {
	wipes int
	err   error
}

func (w *fakeWiper) Wipe() error {
	w.wipes++
	return w.err
}

func newTestMachine(frames int) (*Machine, *state.Store, *recordingRedrawer, *fakeWiper) {
	store := state.NewStore()
	redrawer := &recordingRedrawer{}
	wiper := &fakeWiper{}
	machine := NewMachine(store, anim.NewSelector(anim.Sequential{}), frames, redrawer, wiper)
	return machine, store, redrawer, wiper
}

func TestTypeSettleDeleteScenario(t *testing.T) {
	machine, store, redrawer, _ := newTestMachine(4)

	machine.KeyAccepted()
	snap := store.Snapshot()
	assert.Equal(t, state.KeyActive, snap.Unlock)
	assert.Equal(t, 1, snap.Input)

	machine.SettleIdle()
	assert.Equal(t, state.KeyPressed, store.Snapshot().Unlock)

	machine.KeyDeleted()
	snap = store.Snapshot()
	assert.Equal(t, 0, snap.Input)
	assert.Equal(t, state.Started, snap.Unlock)

	// Every transition above requested a frame.
	assert.Len(t, redrawer.calls, 3)
}

func TestKeyDeletedKeepsBufferNonNegative(t *testing.T) {
	machine, store, _, _ := newTestMachine(4)

	machine.KeyDeleted()
	machine.KeyDeleted()
	snap := store.Snapshot()
	assert.Equal(t, 0, snap.Input)
	assert.Equal(t, state.Started, snap.Unlock)
}

func TestBackspaceWithRemainingBuffer(t *testing.T) {
	machine, store, _, _ := newTestMachine(4)

	machine.KeyAccepted()
	machine.KeyAccepted()
	machine.KeyDeleted()
	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Input)
	assert.Equal(t, state.BackspaceActive, snap.Unlock)

	machine.SettleIdle()
	assert.Equal(t, state.KeyPressed, store.Snapshot().Unlock)
}

func TestSettleIsANoOpOutsideActiveStates(t *testing.T) {
	machine, store, redrawer, _ := newTestMachine(4)

	machine.SettleIdle()
	assert.Equal(t, state.Started, store.Snapshot().Unlock)
	assert.Empty(t, redrawer.calls, "no redraw without a demotion")
}

// For any event sequence the buffer count stays non-negative and, after
// settling, Started holds exactly when the buffer is empty.
func TestInputPositionInvariantUnderRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	machine, store, _, _ := newTestMachine(3)

	for i := 0; i < 2000; i++ {
		if rng.Intn(2) == 0 {
			machine.KeyAccepted()
		} else {
			machine.KeyDeleted()
		}
		snap := store.Snapshot()
		require.GreaterOrEqual(t, snap.Input, 0)

		machine.SettleIdle()
		snap = store.Snapshot()
		require.Equal(t, snap.Input == 0, snap.Unlock == state.Started)
	}
}

func TestFailTintClearsOnNextKey(t *testing.T) {
	machine, store, _, _ := newTestMachine(4)

	assert.False(t, machine.AuthResult(auth.Failure))
	snap := store.Snapshot()
	assert.Equal(t, state.PamWrong, snap.Pam)
	assert.Equal(t, 1, snap.FailedAttempts)

	machine.KeyAccepted()
	assert.Equal(t, state.PamIdle, store.Snapshot().Pam)
}

func TestAuthResultTransitions(t *testing.T) {
	machine, store, _, _ := newTestMachine(4)

	machine.VerifyStarted()
	assert.Equal(t, state.PamVerify, store.Snapshot().Pam)

	assert.False(t, machine.AuthResult(auth.InProgress))
	assert.Equal(t, state.PamVerify, store.Snapshot().Pam)

	assert.True(t, machine.AuthResult(auth.Success))
	// Success is terminal; the pam state is left alone for teardown.
	assert.Equal(t, state.PamVerify, store.Snapshot().Pam)
}

func TestClearBufferWipesBeforeReset(t *testing.T) {
	machine, store, _, wiper := newTestMachine(4)

	machine.KeyAccepted()
	machine.KeyAccepted()
	require.NoError(t, machine.ClearBuffer())
	assert.Equal(t, 1, wiper.wipes)

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.Input)
	assert.Equal(t, state.Started, snap.Unlock)
}

func TestClearBufferWipeFailureIsFatal(t *testing.T) {
	machine, store, _, wiper := newTestMachine(4)
	wiper.err = errors.New("mlock region busy")

	machine.KeyAccepted()
	err := machine.ClearBuffer()
	require.Error(t, err)

	// Logical state must not pretend the buffer is gone.
	assert.Equal(t, 1, store.Snapshot().Input)
}

func TestKeyAcceptedAdvancesAnimationCursor(t *testing.T) {
	store := state.NewStore()
	sel := anim.NewSelector(anim.Sequential{})
	machine := NewMachine(store, sel, 4, &recordingRedrawer{}, &fakeWiper{})

	machine.KeyAccepted()
	assert.Equal(t, 1, sel.Current())
	machine.KeyAccepted()
	assert.Equal(t, 2, sel.Current())
}

func TestZeroFramesNeverTouchesSelector(t *testing.T) {
	store := state.NewStore()
	sel := anim.NewSelector(anim.Sequential{})
	machine := NewMachine(store, sel, 0, &recordingRedrawer{}, &fakeWiper{})

	machine.KeyAccepted()
	machine.KeyAccepted()
	assert.Equal(t, 0, sel.Current())
}
