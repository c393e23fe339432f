package mapcompute

import (
	"fmt"
	"log"
	"sync"

	"github.com/arlojs/dissonmap/internal/cache"
	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/cancel"
	"github.com/arlojs/dissonmap/internal/render"
)

// HistogramBuckets is the bucket count used for the histogram record
// appended after every successful render.
const HistogramBuckets = 64

// Map is a computed dissonance grid: row-major, Width*Height cells.
type Map struct {
	Width, Height uint32
	Data          []float64
}

// Driver ties the cache, the tiled renderer, and the dissonance math
// together into the single compute() entry point described by
// original_source/src/disson/disson/map.rs.
type Driver struct {
	Store   cache.Store[envelope.Value]
	Workers int // 0 means render.Renderer's own default

	// Progress, if set, is forwarded to the underlying render.Renderer and
	// called after each tile completes.
	Progress func(done, total int)
}

// kernel fills a tile's output cells, then immediately appends the tile as a
// Block record to entry, serialized by entryMu (§4.7 step 4: "Immediately
// after filling a tile, the kernel appends a Block(TileRange, borrowed
// output) record to the cache entry under a mutex"). A failed append is
// downgraded to a warning: the tile's in-memory output, which the renderer
// blits into the map, is authoritative regardless of whether it made it to
// disk (§7).
func kernel(cfg Config, entry *cache.Entry[envelope.Value], entryMu *sync.Mutex) render.Kernel[FreqPair, float64] {
	return render.KernelFunc[FreqPair, float64](func(tile *render.Tile[FreqPair, float64]) {
		rng := tile.Range()
		for y := uint32(0); y < rng.Size.Y; y++ {
			in, out := tile.Row(y)
			for i, pair := range in {
				out[i] = Dissonance(pair.X, pair.Y, cfg.Pitch, cfg.Overlap)
			}
		}

		entryMu.Lock()
		err := entry.Append(BlockValue{Range: rng, Payload: envelope.Borrow(tile.Out())})
		entryMu.Unlock()
		if err != nil {
			log.Printf("mapcompute: caching tile %+v: %v", rng, err)
		}
	})
}

// Compute renders the dissonance map for cfg, reusing any cached tiles
// and appending newly computed ones back to the cache entry before
// returning. tok is polled cooperatively by the renderer between tiles.
func (d *Driver) Compute(cfg Config, tok *cancel.Token) (*Map, error) {
	entry, err := d.Store.Entry(cfg)
	if err != nil {
		return nil, fmt.Errorf("mapcompute: opening cache entry: %w", err)
	}
	defer entry.Close()

	records, err := entry.Read()
	if err != nil {
		return nil, fmt.Errorf("mapcompute: reading cache entry: %w", err)
	}

	size := render.Point{X: cfg.Width, Y: cfg.Height}
	wantTiles := render.Tiles(size, render.Point{X: render.DefaultTileWidth, Y: render.DefaultTileHeight})
	wantRanges := make(map[render.TileRange]bool, len(wantTiles))
	for _, rng := range wantTiles {
		wantRanges[rng] = true
	}

	preload := make(map[render.TileRange][]float64)
	for _, rec := range records {
		block, err := envelope.AsValue[BlockValue](rec)
		if err != nil {
			continue // a HistogramValue record, not relevant to preload
		}
		if wantRanges[block.Range] {
			preload[block.Range] = block.Payload.Bytes()
		}
	}

	// §4.7 step 3: poll at grid construction and bail before doing any
	// work if the token is already set.
	if err := tok.TryStrong(); err != nil {
		return nil, err
	}
	grid := buildGrid(cfg)

	var entryMu sync.Mutex
	r := &render.Renderer[FreqPair, float64]{Kernel: kernel(cfg, entry, &entryMu), Workers: d.Workers, Progress: d.Progress}
	out, err := r.Run(size, grid, preload, tok)
	if err != nil {
		return nil, err
	}

	if err := entry.Append(Histogram(out, HistogramBuckets)); err != nil {
		return nil, fmt.Errorf("mapcompute: caching histogram: %w", err)
	}

	return &Map{Width: cfg.Width, Height: cfg.Height, Data: out}, nil
}
