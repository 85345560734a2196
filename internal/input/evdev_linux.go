//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEsc        = 1
	keyBackspace  = 14
	keyEnter      = 28
	keyLeftShift  = 42
	keyRightShift = 54
	keyKPEnter    = 96

	keyDown   = 1
	keyRepeat = 2
)

// US layout, unshifted and shifted. Enough for passphrases typed on a
// console; anything unmapped is ignored rather than guessed at.
var keymap = map[uint16]rune{
	2: '1', 3: '2', 4: '3', 5: '4', 6: '5', 7: '6', 8: '7', 9: '8', 10: '9', 11: '0',
	12: '-', 13: '=',
	16: 'q', 17: 'w', 18: 'e', 19: 'r', 20: 't', 21: 'y', 22: 'u', 23: 'i', 24: 'o', 25: 'p',
	26: '[', 27: ']',
	30: 'a', 31: 's', 32: 'd', 33: 'f', 34: 'g', 35: 'h', 36: 'j', 37: 'k', 38: 'l',
	39: ';', 40: '\'', 41: '`', 43: '\\',
	44: 'z', 45: 'x', 46: 'c', 47: 'v', 48: 'b', 49: 'n', 50: 'm',
	51: ',', 52: '.', 53: '/',
	57: ' ',
}

var keymapShifted = map[uint16]rune{
	2: '!', 3: '@', 4: '#', 5: '$', 6: '%', 7: '^', 8: '&', 9: '*', 10: '(', 11: ')',
	12: '_', 13: '+',
	16: 'Q', 17: 'W', 18: 'E', 19: 'R', 20: 'T', 21: 'Y', 22: 'U', 23: 'I', 24: 'O', 25: 'P',
	26: '{', 27: '}',
	30: 'A', 31: 'S', 32: 'D', 33: 'F', 34: 'G', 35: 'H', 36: 'J', 37: 'K', 38: 'L',
	39: ':', 40: '"', 41: '~', 43: '|',
	44: 'Z', 45: 'X', 46: 'C', 47: 'V', 48: 'B', 49: 'N', 50: 'M',
	51: '<', 52: '>', 53: '?',
	57: ' ',
}

type evdevLogger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Evdev reads raw key events from every /dev/input/event* device and
// classifies them. One goroutine per device; all feed a shared channel.
type Evdev struct {
	Logger evdevLogger

	ch      chan Event
	stopped atomic.Bool

	// shift is shared across devices; value holds the number of shift
	// keys currently held.
	shift atomic.Int32
}

func NewEvdev() *Evdev {
	return &Evdev{ch: make(chan Event, 16)}
}

func (e *Evdev) Events() <-chan Event { return e.ch }

func (e *Evdev) Stop() error {
	e.stopped.Store(true)
	return nil
}

func (e *Evdev) Start(ctx context.Context) error {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no evdev devices under /dev/input")
	}
	for _, path := range paths {
		go e.readDevice(ctx, path)
	}
	if e.Logger != nil {
		e.Logger.Infof("input", "watching %d evdev devices", len(paths))
	}
	return nil
}

func (e *Evdev) readDevice(ctx context.Context, path string) {
	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if e.stopped.Load() {
			return
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, pollErr := unix.Poll(pollFds, 250); pollErr != nil {
			// Device gone.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey {
				continue
			}
			e.handleKey(ctx, code, value)
		}
	}
}

func (e *Evdev) handleKey(ctx context.Context, code uint16, value int32) {
	if code == keyLeftShift || code == keyRightShift {
		switch value {
		case keyDown:
			e.shift.Add(1)
		case 0:
			if e.shift.Load() > 0 {
				e.shift.Add(-1)
			}
		}
		return
	}
	if value != keyDown && value != keyRepeat {
		return
	}

	var ev Event
	switch code {
	case keyEsc:
		ev = Event{Kind: KeyEscape}
	case keyBackspace:
		ev = Event{Kind: KeyBackspace}
	case keyEnter, keyKPEnter:
		ev = Event{Kind: KeyEnter}
	default:
		table := keymap
		if e.shift.Load() > 0 {
			table = keymapShifted
		}
		r, ok := table[code]
		if !ok {
			return
		}
		ev = Event{Kind: KeyRune, Rune: r}
	}

	select {
	case e.ch <- ev:
	case <-ctx.Done():
	}
}
