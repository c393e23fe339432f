package mapcompute

import (
	"testing"

	"github.com/arlojs/dissonmap/internal/cache"
	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/cancel"
)

func testConfig() Config {
	return Config{
		Width:         40,
		Height:        30,
		View:          IdentityMatrix3,
		BaseFrequency: 220,
		Pitch:         Edo,
		Overlap:       ExpDiss,
	}
}

func TestDriverComputeFillsEveryCell(t *testing.T) {
	dir := t.TempDir()
	d := &Driver{Store: &cache.FileStore[envelope.Value]{Root: dir, Codec: Codec{}}}

	m, err := d.Compute(testConfig(), cancel.New())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if uint32(len(m.Data)) != m.Width*m.Height {
		t.Fatalf("got %d cells, want %d", len(m.Data), m.Width*m.Height)
	}
	for i, v := range m.Data {
		if v < 0 {
			t.Fatalf("cell %d = %v, dissonance should never be negative", i, v)
		}
	}
}

func TestDriverComputeIsRepeatableAndCached(t *testing.T) {
	dir := t.TempDir()
	d := &Driver{Store: &cache.FileStore[envelope.Value]{Root: dir, Codec: Codec{}}}

	cfg := testConfig()
	first, err := d.Compute(cfg, cancel.New())
	if err != nil {
		t.Fatalf("first Compute: %v", err)
	}
	second, err := d.Compute(cfg, cancel.New())
	if err != nil {
		t.Fatalf("second Compute: %v", err)
	}
	if len(first.Data) != len(second.Data) {
		t.Fatalf("length mismatch between runs")
	}
	for i := range first.Data {
		if first.Data[i] != second.Data[i] {
			t.Fatalf("cell %d diverges across runs with identical config: %v vs %v", i, first.Data[i], second.Data[i])
		}
	}
}

func TestDriverComputeHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	d := &Driver{Store: &cache.FileStore[envelope.Value]{Root: dir, Codec: Codec{}}}

	tok := cancel.New()
	tok.Set()
	if _, err := d.Compute(testConfig(), tok); err == nil {
		t.Fatalf("Compute with pre-cancelled token should fail")
	}
}

func TestDriverComputeWithNullStoreNeverPersists(t *testing.T) {
	d := &Driver{Store: cache.NullStore[envelope.Value]{}}

	m, err := d.Compute(testConfig(), cancel.New())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if uint32(len(m.Data)) != m.Width*m.Height {
		t.Fatalf("got %d cells, want %d", len(m.Data), m.Width*m.Height)
	}
}
