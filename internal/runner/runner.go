// Package runner races an operation against an OS interrupt signal and a
// filesystem watch loop, so every subcommand that touches the renderer
// gets the same Ctrl-C and --watch behavior. Grounded on
// original_source/src/disson/disson/mod.rs's run_cancelable/watch (a
// Tokio select between signal::ctrl_c() and the compute future), adapted
// to Go's goroutine+channel idiom in place of async/await, and on
// _examples/pspoerri-geotiff2pmtiles/internal/tile/progress.go's
// ticker+done-channel shape for the poll loop in Watch.
package runner

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/arlojs/dissonmap/internal/cancel"
)

// Outcome discriminates the three ways a cancelable run can end, mirroring
// the Rust CancelResult<T> (Ok(T) / Err(Cancelled) / Err(other)).
type Outcome[T any] struct {
	Value     T
	Cancelled bool
	Err       error // non-nil only when Cancelled is false and the run failed
}

// Run executes fn on its own goroutine and races it against SIGINT. fn
// must poll tok cooperatively (e.g. via the render package) to actually
// stop promptly; Run itself returns as soon as whichever happens first —
// the interrupt or fn's completion — is observed, same as the original's
// select: if Ctrl-C wins, fn's eventual result is discarded rather than
// waited for.
func Run[T any](fn func(tok *cancel.Token) (T, error)) Outcome[T] {
	tok := cancel.New()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	type result struct {
		value T
		err   error
	}
	resCh := make(chan result, 1)
	go func() {
		v, err := fn(tok)
		resCh <- result{value: v, err: err}
	}()

	select {
	case <-sigCh:
		if isInteractive(os.Stdout) {
			fmt.Fprint(os.Stderr, "\r")
		}
		log.Print("^C received, stopping...")
		tok.Set()
		return Outcome[T]{Cancelled: true}
	case r := <-resCh:
		if errors.Is(r.err, cancel.Cancelled) {
			return Outcome[T]{Cancelled: true}
		}
		if r.err != nil {
			return Outcome[T]{Err: r.err}
		}
		return Outcome[T]{Value: r.value}
	}
}

func isInteractive(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// WatchEvent is a debounced notification that a watched path's contents
// changed.
type WatchEvent struct {
	Path string
}

// Watch polls path's modification time at the given interval and sends a
// WatchEvent whenever it changes, until tok is cancelled. It never
// observes the absence of a file as a change — a config file that hasn't
// been created yet is silently waited for, matching the original's
// "config file doesn't exist yet, waiting for a new one" behavior.
func Watch(tok *cancel.Token, path string, interval time.Duration) <-chan WatchEvent {
	events := make(chan WatchEvent)
	go func() {
		defer close(events)
		var lastMod time.Time
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if tok.TryWeak() != nil {
				return
			}
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if mod := info.ModTime(); mod.After(lastMod) {
				if !lastMod.IsZero() {
					events <- WatchEvent{Path: path}
				}
				lastMod = mod
			}
		}
	}()
	return events
}
