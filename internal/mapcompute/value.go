package mapcompute

import (
	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/render"
)

// BlockValue caches one rendered tile's output, keyed by its exact
// TileRange so a later run can splice it back in as a preload without
// recomputation. This is the concrete shape behind map.rs's
// CacheValue::Block(()) placeholder.
type BlockValue struct {
	Range   render.TileRange
	Payload envelope.Payload
}

// CacheValueTag implements envelope.Value.
func (BlockValue) CacheValueTag() string { return "map.block" }

// HistogramValue summarizes a fully rendered map's value distribution —
// concrete shape chosen for map.rs's CacheValue::Histogram(()) placeholder,
// useful for normalizing a future color-mapped render of the same data
// without re-scanning every cell.
type HistogramValue struct {
	Min, Max, Mean float64
	Buckets        []uint64 // fixed-width buckets spanning [Min, Max]
}

// CacheValueTag implements envelope.Value.
func (HistogramValue) CacheValueTag() string { return "map.histogram" }

// Histogram computes a HistogramValue over a rendered map's cells.
func Histogram(data []float64, bucketCount int) HistogramValue {
	if len(data) == 0 || bucketCount < 1 {
		return HistogramValue{Buckets: make([]uint64, bucketCount)}
	}
	min, max := data[0], data[0]
	var sum float64
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	buckets := make([]uint64, bucketCount)
	span := max - min
	for _, v := range data {
		idx := 0
		if span > 0 {
			idx = int((v - min) / span * float64(bucketCount))
			if idx >= bucketCount {
				idx = bucketCount - 1
			}
		}
		buckets[idx]++
	}

	return HistogramValue{
		Min:     min,
		Max:     max,
		Mean:    sum / float64(len(data)),
		Buckets: buckets,
	}
}
