// Package auth is the boundary to the external authenticator. The lock
// engine never holds password bytes; they live here, and the engine only
// tracks how many were buffered.
package auth

import "context"

// Result of one verification attempt.
type Result int

const (
	// InProgress is signalled when a check has been started and is
	// still in flight.
	InProgress Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case InProgress:
		return "in-progress"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return "unknown"
}

// Authenticator owns the password buffer and verifies it asynchronously
// so the render loop never stalls on a slow backend. Results arrive on
// the Results channel, at most one terminal result per Verify call.
type Authenticator interface {
	// Push appends one accepted rune to the password buffer.
	Push(r rune)

	// Pop removes the last buffered rune, zeroing its bytes.
	Pop()

	// Verify starts an asynchronous check of the current buffer.
	Verify(ctx context.Context)

	Results() <-chan Result

	// Wipe zeroes and empties the password buffer. A wipe failure is
	// fatal to the process: password material must not stay resident.
	Wipe() error
}
