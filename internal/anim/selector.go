// Package anim picks which animation frame of the unlock indicator is
// shown for each accepted keypress.
package anim

import "math/rand"

// Strategy decides the frame shown after the cursor has been advanced.
type Strategy interface {
	pick(advanced, frameCount int) int
}

// Sequential plays frames in ascending cyclic order.
type Sequential struct{}

func (Sequential) pick(advanced, _ int) int { return advanced }

// Randomized replaces the advanced cursor with a uniformly chosen frame.
// Repeats are possible but visually disfavored by the uniform draw.
type Randomized struct {
	rng *rand.Rand
}

func NewRandomized(seed int64) Randomized {
	return Randomized{rng: rand.New(rand.NewSource(seed))}
}

func (r Randomized) pick(_, frameCount int) int {
	return r.rng.Intn(frameCount)
}

// Selector owns the animation cursor. It survives across redraws and is
// only ever moved here; rendering reads Current without side effects so
// repeated renders of the same state stay pixel-identical.
type Selector struct {
	strategy Strategy
	cursor   int
}

func NewSelector(strategy Strategy) *Selector {
	return &Selector{strategy: strategy}
}

// Advance moves the cursor for one accepted keypress and returns the
// frame to show. The cursor always steps by one modulo frameCount first;
// a randomized strategy then overwrites it. Callers must not invoke
// Advance with frameCount <= 0; the guard keeps a broken asset from
// faulting the render loop.
func (s *Selector) Advance(frameCount int) int {
	if frameCount <= 0 {
		return s.cursor
	}
	s.cursor = (s.cursor + 1) % frameCount
	s.cursor = s.strategy.pick(s.cursor, frameCount)
	return s.cursor
}

// Current returns the cursor without advancing it.
func (s *Selector) Current() int { return s.cursor }
