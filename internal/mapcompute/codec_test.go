package mapcompute

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/render"
)

func TestCodecRoundTripsBlockValue(t *testing.T) {
	var buf bytes.Buffer
	c := Codec{}

	want := BlockValue{
		Range:   render.TileRange{Pos: render.Point{X: 4, Y: 8}, Size: render.Point{X: 2, Y: 2}},
		Payload: envelope.Borrow([]float64{1, 2, 3, 4}),
	}
	if err := c.Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	block, err := envelope.AsValue[BlockValue](got)
	if err != nil {
		t.Fatalf("AsValue: %v", err)
	}
	if block.Range != want.Range {
		t.Fatalf("Range = %+v, want %+v", block.Range, want.Range)
	}
	if !equalFloats(block.Payload.Bytes(), want.Payload.Bytes()) {
		t.Fatalf("Payload = %v, want %v", block.Payload.Bytes(), want.Payload.Bytes())
	}
}

func TestCodecRoundTripsHistogramValue(t *testing.T) {
	var buf bytes.Buffer
	c := Codec{}

	want := HistogramValue{Min: 0, Max: 1, Mean: 0.5, Buckets: []uint64{1, 2, 3}}
	if err := c.Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := c.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	h, err := envelope.AsValue[HistogramValue](got)
	if err != nil {
		t.Fatalf("AsValue: %v", err)
	}
	if h.Min != want.Min || h.Max != want.Max || h.Mean != want.Mean {
		t.Fatalf("got %+v, want %+v", h, want)
	}
	if !equalUint64s(h.Buckets, want.Buckets) {
		t.Fatalf("Buckets = %v, want %v", h.Buckets, want.Buckets)
	}
}

func TestCodecDecodeCleanEOFAtRecordBoundary(t *testing.T) {
	c := Codec{}
	_, err := c.Decode(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Decode(empty) = %v, want io.EOF", err)
	}
}

func TestCodecDecodeUnknownTag(t *testing.T) {
	c := Codec{}
	_, err := c.Decode(bytes.NewReader([]byte{99}))
	if err == nil {
		t.Fatalf("Decode with unknown tag should fail")
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalUint64s(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
