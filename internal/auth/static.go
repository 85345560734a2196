package auth

import (
	"context"
	"crypto/subtle"
	"sync"
	"unicode/utf8"
)

// Static verifies the buffer against a secret fixed at startup. It
// stands in for a PAM backend in development, preview mode, and tests.
type Static struct {
	mu      sync.Mutex
	secret  []byte
	buf     []byte
	results chan Result
}

func NewStatic(secret string) *Static {
	return &Static{
		secret:  []byte(secret),
		results: make(chan Result, 4),
	}
}

func (s *Static) Push(r rune) {
	s.mu.Lock()
	s.buf = utf8.AppendRune(s.buf, r)
	s.mu.Unlock()
}

func (s *Static) Pop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(s.buf)
	cut := len(s.buf) - size
	for i := cut; i < len(s.buf); i++ {
		s.buf[i] = 0
	}
	s.buf = s.buf[:cut]
}

// Verify snapshots the buffer and checks it off the event thread. The
// attempt's copy is zeroed once compared.
func (s *Static) Verify(ctx context.Context) {
	s.mu.Lock()
	attempt := make([]byte, len(s.buf))
	copy(attempt, s.buf)
	s.mu.Unlock()

	go func() {
		s.deliver(ctx, InProgress)
		ok := subtle.ConstantTimeCompare(attempt, s.secret) == 1
		for i := range attempt {
			attempt[i] = 0
		}
		if ok {
			s.deliver(ctx, Success)
		} else {
			s.deliver(ctx, Failure)
		}
	}()
}

func (s *Static) deliver(ctx context.Context, r Result) {
	select {
	case s.results <- r:
	case <-ctx.Done():
	}
}

func (s *Static) Results() <-chan Result { return s.results }

func (s *Static) Wipe() error {
	s.mu.Lock()
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.buf = s.buf[:0]
	s.mu.Unlock()
	return nil
}

// Buffered reports how many bytes are currently buffered. Test hook.
func (s *Static) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}
