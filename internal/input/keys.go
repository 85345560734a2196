// Package input delivers classified keyboard events to the lock engine.
// Classification (printable vs delete vs control) happens here; the
// engine only ever sees logical events.
package input

import "context"

type Kind int

const (
	// KeyRune is a printable character accepted into the password buffer.
	KeyRune Kind = iota
	KeyBackspace
	KeyEnter
	KeyEscape
)

type Event struct {
	Kind Kind
	Rune rune
}

type Keyboard interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Chan is a caller-fed Keyboard, used in tests and preview mode.
type Chan struct {
	ch chan Event
}

func NewChan() *Chan {
	return &Chan{ch: make(chan Event, 16)}
}

func (c *Chan) Start(ctx context.Context) error { return nil }
func (c *Chan) Stop() error                     { return nil }
func (c *Chan) Events() <-chan Event            { return c.ch }
func (c *Chan) Send(ev Event)                   { c.ch <- ev }
