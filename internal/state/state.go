package state

import "sync"

// UnlockState tracks typing activity on the password buffer. It decides
// which visual elements of the indicator are drawn.
type UnlockState int

const (
	// Started means no password characters are buffered; the indicator
	// may be hidden entirely.
	Started UnlockState = iota
	// KeyPressed means at least one character is buffered with no fresh
	// activity this frame.
	KeyPressed
	// KeyActive means a character was just accepted; shows one animation frame.
	KeyActive
	// BackspaceActive means a character was just removed; shows the
	// backspace layer instead of an animation frame.
	BackspaceActive
)

func (u UnlockState) String() string {
	switch u {
	case Started:
		return "started"
	case KeyPressed:
		return "key-pressed"
	case KeyActive:
		return "key-active"
	case BackspaceActive:
		return "backspace-active"
	}
	return "unknown"
}

// PamState tracks the verification verdict, independent of typing
// activity. It decides which status tint of the indicator is drawn.
// A terminal success is not a rendered state; the process tears down.
type PamState int

const (
	PamIdle PamState = iota
	PamVerify
	PamWrong
)

func (p PamState) String() string {
	switch p {
	case PamIdle:
		return "idle"
	case PamVerify:
		return "verify"
	case PamWrong:
		return "wrong"
	}
	return "unknown"
}

// State is one consistent snapshot of the lock engine.
type State struct {
	Unlock UnlockState
	Pam    PamState
	// Input is the number of buffered password characters. The bytes
	// themselves live in the authenticator, never here.
	Input          int
	FailedAttempts int
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Unlock: Started, Pam: PamIdle}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetUnlock(unlock UnlockState) {
	store.mu.Lock()
	store.state.Unlock = unlock
	store.mu.Unlock()
}

func (store *Store) SetPam(pam PamState) {
	store.mu.Lock()
	store.state.Pam = pam
	store.mu.Unlock()
}

func (store *Store) SetInput(count int) {
	if count < 0 {
		count = 0
	}
	store.mu.Lock()
	store.state.Input = count
	store.mu.Unlock()
}

func (store *Store) AddFailedAttempt() {
	store.mu.Lock()
	store.state.FailedAttempts++
	store.mu.Unlock()
}
