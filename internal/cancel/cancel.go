// Package cancel provides a process-wide cooperative cancellation signal.
//
// A Token is a one-shot, monotonic flag: once set it never clears. Tile
// workers poll it cheaply between tiles (Weak); driver and runner code poll
// it at pass boundaries where a stronger ordering guarantee is needed
// (Strong).
package cancel

import "sync/atomic"

// Error distinguishes a cooperative cancellation from a real failure.
// Cancelled is a control signal, not an error: callers that receive it
// should unwind cleanly rather than report a fault.
type Error struct{ reason string }

func (e *Error) Error() string { return e.reason }

// Cancelled is returned by Token.Try* once the token has been set.
var Cancelled = &Error{reason: "operation cancelled"}

// Token is a single boolean cancellation flag with atomic semantics.
// The zero value is not usable; construct with New.
type Token struct {
	flag atomic.Bool
}

// New returns a fresh, unset Token.
func New() *Token { return &Token{} }

// Set publishes cancellation with sequential consistency. Idempotent.
func (t *Token) Set() { t.flag.Store(true) }

// IsSet reports whether Set has been called, using the same ordering as
// TryStrong. Useful for non-error-returning call sites (e.g. logging).
func (t *Token) IsSet() bool { return t.flag.Load() }

// TryWeak performs a cheap, relaxed-ish read of the flag. Go's atomic.Bool
// does not expose memory-order tuning, so this and TryStrong use the same
// underlying load; the distinction is kept at the API level because the
// renderer polls once per tile (cheap, best-effort) while the driver polls
// at pass boundaries to establish happens-before with external signal
// sources (see TryStrong).
func (t *Token) TryWeak() error {
	if t.flag.Load() {
		return Cancelled
	}
	return nil
}

// TryStrong reads the flag with a full sequentially-consistent load. A Set
// call happens-before any subsequent TryStrong observing it; TryWeak polls
// may observe Set with arbitrary delay bounded by scheduling.
func (t *Token) TryStrong() error {
	if t.flag.Load() {
		return Cancelled
	}
	return nil
}
