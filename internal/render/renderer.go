// Package render decomposes a W×H output grid into fixed-size tiles,
// dispatches them to a worker pool in center-out order, writes results into
// a shared back-buffer without row locks, honors cooperative cancellation
// between tiles, and merges preloaded tiles supplied by a cache.
package render

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/arlojs/dissonmap/internal/cancel"
)

// Default tile dimensions, matching spec.md's compile-time TW/TH constants.
const (
	DefaultTileWidth  = 128
	DefaultTileHeight = 128
)

// Renderer runs a Kernel over a tiled decomposition of a grid. TileWidth and
// TileHeight default to DefaultTileWidth/DefaultTileHeight when zero.
// Workers defaults to runtime.GOMAXPROCS(0) when zero.
type Renderer[I any, O any] struct {
	Kernel     Kernel[I, O]
	TileWidth  uint32
	TileHeight uint32
	Workers    int

	// Progress, if set, is called after each tile completes (including
	// preload hits) with the number done so far and the total tile count.
	// Called concurrently from worker goroutines; implementations must be
	// safe for concurrent use. Grounded on
	// _examples/pspoerri-geotiff2pmtiles/internal/tile/progress.go's
	// progressBar.Increment, which the same worker pool calls per tile.
	Progress func(done, total int)
}

// New returns a Renderer with default tile dimensions and worker count.
func New[I, O any](k Kernel[I, O]) *Renderer[I, O] {
	return &Renderer[I, O]{Kernel: k}
}

func (r *Renderer[I, O]) tileSize() Point {
	w, h := r.TileWidth, r.TileHeight
	if w == 0 {
		w = DefaultTileWidth
	}
	if h == 0 {
		h = DefaultTileHeight
	}
	return Point{X: w, Y: h}
}

func (r *Renderer[I, O]) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Tiles returns the center-out-ordered tile decomposition of a size.X by
// size.Y grid for the given tile dimensions. Exported so callers (e.g. the
// cache read path) can validate preload ranges against the exact
// decomposition a run will use.
func Tiles(size Point, tileSize Point) []TileRange {
	tilesX := ceilDiv(size.X, tileSize.X)
	tilesY := ceilDiv(size.Y, tileSize.Y)

	tiles := make([]TileRange, 0, int(tilesX)*int(tilesY))
	for row := uint32(0); row < tilesY; row++ {
		for col := uint32(0); col < tilesX; col++ {
			pos := Point{X: col * tileSize.X, Y: row * tileSize.Y}
			w := tileSize.X
			if pos.X+w > size.X {
				w = size.X - pos.X
			}
			h := tileSize.Y
			if pos.Y+h > size.Y {
				h = size.Y - pos.Y
			}
			tiles = append(tiles, TileRange{Pos: pos, Size: Point{X: w, Y: h}})
		}
	}

	ctr := Point{X: size.X / 2, Y: size.Y / 2}
	sort.Slice(tiles, func(i, j int) bool {
		a, b := tiles[i], tiles[j]
		da := centerDist(ctr, a)
		db := centerDist(ctr, b)
		if da != db {
			return da < db
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y < b.Pos.Y
		}
		return a.Pos.X < b.Pos.X
	})

	return tiles
}

func centerDist(ctr Point, r TileRange) float64 {
	cx := float64(r.Pos.X) + float64(r.Size.X)/2
	cy := float64(r.Pos.Y) + float64(r.Size.Y)/2
	dx := float64(ctr.X) - cx
	dy := float64(ctr.Y) - cy
	return math.Hypot(dx, dy)
}

func ceilDiv(n, d uint32) uint32 {
	if n%d == 0 {
		return n / d
	}
	return n/d + 1
}

// Run renders the size.X by size.Y grid described by buf (row-major, stride
// size.X). preload supplies tiles whose output was already computed (e.g.
// read back from a cache); their exact TileRange is blitted verbatim
// instead of invoking the kernel. Returns cancel.Cancelled if the token was
// observed set at the end of the run (tiles already dispatched still run to
// completion — cancellation is cooperative at tile granularity).
func (r *Renderer[I, O]) Run(size Point, buf []I, preload map[TileRange][]O, tok *cancel.Token) ([]O, error) {
	if want := int(size.X) * int(size.Y); len(buf) != want {
		panic("render: input buffer size mismatch")
	}

	tiles := Tiles(size, r.tileSize())
	bbuf := NewBackBuffer[O](size)

	var next atomic.Int64
	var done atomic.Int64
	var cancelled atomic.Bool
	total := len(tiles)
	numWorkers := r.workers()
	if numWorkers > len(tiles) {
		numWorkers = len(tiles)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if cancelled.Load() || tok.TryWeak() != nil {
					cancelled.Store(true)
					return
				}
				i := next.Add(1) - 1
				if i >= int64(len(tiles)) {
					return
				}
				rng := tiles[i]

				if out, ok := preload[rng]; ok {
					bbuf.Blit(rng, out)
				} else {
					out := make([]O, rng.Count())
					r.Kernel.Process(&Tile[I, O]{
						rng:      rng,
						inStride: int(size.X),
						in:       buf,
						out:      out,
					})
					bbuf.Blit(rng, out)
				}

				if r.Progress != nil {
					r.Progress(int(done.Add(1)), total)
				}

				if tok.TryWeak() != nil {
					cancelled.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()

	if err := tok.TryStrong(); err != nil {
		return nil, err
	}
	return bbuf.IntoInner(), nil
}
