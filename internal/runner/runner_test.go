package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arlojs/dissonmap/internal/cancel"
)

func TestRunReturnsValueOnSuccess(t *testing.T) {
	out := Run(func(tok *cancel.Token) (int, error) {
		return 42, nil
	})
	if out.Cancelled || out.Err != nil || out.Value != 42 {
		t.Fatalf("got %+v, want value 42", out)
	}
}

func TestRunReturnsFailedOnError(t *testing.T) {
	wantErr := errors.New("boom")
	out := Run(func(tok *cancel.Token) (int, error) {
		return 0, wantErr
	})
	if out.Cancelled || !errors.Is(out.Err, wantErr) {
		t.Fatalf("got %+v, want Err=%v", out, wantErr)
	}
}

func TestRunReturnsCancelledWhenFnReportsCancellation(t *testing.T) {
	out := Run(func(tok *cancel.Token) (int, error) {
		return 0, cancel.Cancelled
	})
	if !out.Cancelled || out.Err != nil {
		t.Fatalf("got %+v, want Cancelled", out)
	}
}

func TestWatchFiresOnModification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tok := cancel.New()
	events := Watch(tok, path, 5*time.Millisecond)

	time.Sleep(15 * time.Millisecond)
	future := time.Now().Add(50 * time.Millisecond)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Path != path {
			t.Fatalf("event path = %q, want %q", evt.Path, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watch event")
	}

	tok.Set()
}

func TestWatchToleratesMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist")

	tok := cancel.New()
	events := Watch(tok, path, 5*time.Millisecond)

	select {
	case <-events:
		t.Fatalf("watch should not emit an event for a file that never existed")
	case <-time.After(30 * time.Millisecond):
	}

	tok.Set()
}
