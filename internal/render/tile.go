package render

// Tile is a non-owning, per-invocation view into one tile's slice of the
// input grid and its corresponding output storage. A Kernel must fill every
// element of Out() exactly once.
type Tile[I, O any] struct {
	rng      TileRange
	inStride int
	in       []I
	out      []O
}

// Range returns the tile's position and size within the full grid.
func (t *Tile[I, O]) Range() TileRange { return t.rng }

// Out returns the tile's output slice, row-major, length Range().Count().
func (t *Tile[I, O]) Out() []O { return t.out }

// Row returns the y-th row (0-based, relative to the tile) of input and
// output slices, each Range().Size.X long.
func (t *Tile[I, O]) Row(y uint32) ([]I, []O) {
	rowLen := int(t.rng.Size.X)
	inOff := int(t.rng.Pos.X) + (int(y)+int(t.rng.Pos.Y))*t.inStride
	outOff := int(y) * rowLen
	return t.in[inOff : inOff+rowLen], t.out[outOff : outOff+rowLen]
}

// Kernel fills a tile's output from its input. Kernel panics are fatal to
// the render run, by design: a kernel that cannot produce a value for a
// cell is a programmer bug, not a recoverable condition.
type Kernel[I, O any] interface {
	Process(tile *Tile[I, O])
}

// KernelFunc adapts a plain function to the Kernel interface.
type KernelFunc[I, O any] func(tile *Tile[I, O])

// Process implements Kernel.
func (f KernelFunc[I, O]) Process(tile *Tile[I, O]) { f(tile) }
