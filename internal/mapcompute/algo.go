// Package mapcompute computes dissonance maps: for every pixel of a W×H
// grid, two frequencies are derived from the pixel's position (via a view
// transform and a base frequency), each is expanded into an overtone
// series, and the pixel's value is the aggregate sensory dissonance
// between the two series under a chosen pitch-space and overlap curve.
//
// Grounded on original_source/src/disson/disson/algo.rs (PitchCurve,
// OverlapCurve), wave.rs (Partial, overtone series) and map.rs (Config,
// compute driver shape).
package mapcompute

import "math"

// PitchCurve maps a linear frequency in Hz to a pitch-space coordinate in
// which perceptual distance is rendered by an OverlapCurve.
type PitchCurve int

const (
	// Edo is log2(hz): equal pitch-space distance means equal frequency
	// ratio (as in 12-tone equal division of the octave).
	Edo PitchCurve = iota
	// Erb is the Equivalent Rectangular Bandwidth rate scale, closer to
	// perceived auditory distance than Edo at low frequencies.
	Erb
)

// Eval converts a frequency in Hz to this curve's pitch-space coordinate.
func (c PitchCurve) Eval(hz float64) float64 {
	switch c {
	case Erb:
		return 11.17268 * math.Log(1+(hz*46.06538)/(hz+14678.49))
	default:
		return math.Log2(hz)
	}
}

// String renders the curve's canonical name, used by config serialization.
func (c PitchCurve) String() string {
	switch c {
	case Erb:
		return "ErbRate"
	default:
		return "Logarithmic"
	}
}

// OverlapCurve scores the roughness contributed by two partials a fixed
// pitch-space distance apart.
type OverlapCurve int

const (
	// ExpDiss is 0 at zero distance, rises to a peak of 1 at distance 1
	// and decays exponentially beyond it; the classic
	// Sethares/Plomp-Levelt roughness shape.
	ExpDiss OverlapCurve = iota
	// TrapDiss is a cheap trapezoidal approximation of ExpDiss.
	TrapDiss
	// TriCons is a triangular consonance curve (1 at zero distance, 0
	// from distance 1 onward).
	TriCons
	// TrapCons is a trapezoidal consonance curve, flat-topped out to
	// distance 1, tapering to 0 by distance 2.
	TrapCons
)

// Eval scores the overlap between two pitch-space positions.
func (c OverlapCurve) Eval(a, b float64) float64 {
	x := math.Abs(b - a)
	switch c {
	case TrapDiss:
		return math.Min(3*x, 1) * clamp01(2-x)
	case TriCons:
		return math.Max(1-x, 0)
	case TrapCons:
		return clamp01(2 - x)
	default: // ExpDiss
		return x * math.Exp(1-x)
	}
}

// String renders the curve's canonical name, used by config serialization.
func (c OverlapCurve) String() string {
	switch c {
	case TrapDiss:
		return "TrapezoidDissonance"
	case TriCons:
		return "TriangleConsonance"
	case TrapCons:
		return "TrapezoidConsonance"
	default:
		return "ExponentialDissonance"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
