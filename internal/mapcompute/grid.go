package mapcompute

import "math"

// FreqPair is the renderer's per-pixel input: the two Hz values whose
// overtone series are compared to produce that pixel's dissonance value.
type FreqPair struct {
	X, Y float64
}

// buildGrid derives each pixel's FreqPair from its position: normalized
// pixel coordinates run through cfg.View, then each resulting axis is
// mapped to Hz around cfg.BaseFrequency (f ↦ base_hz · 2^f).
func buildGrid(cfg Config) []FreqPair {
	w, h := int(cfg.Width), int(cfg.Height)
	out := make([]FreqPair, w*h)

	normX := normalizer(w)
	normY := normalizer(h)

	for py := 0; py < h; py++ {
		ny := normY(py)
		for px := 0; px < w; px++ {
			nx := normX(px)
			u, v := cfg.View.Apply(nx, ny)
			out[py*w+px] = FreqPair{
				X: cfg.BaseFrequency * math.Pow(2, u),
				Y: cfg.BaseFrequency * math.Pow(2, v),
			}
		}
	}
	return out
}

func normalizer(n int) func(int) float64 {
	if n <= 1 {
		return func(int) float64 { return 0 }
	}
	return func(i int) float64 { return float64(i) / float64(n-1) }
}
