package mapcompute

// Partial is one component of a harmonic series: a frequency in Hz and a
// linear peak amplitude.
type Partial struct {
	Hz  float64
	Amp float64
}

// PartialCount is the number of harmonics generated per tone. 32 partials
// is enough for the roughness contribution of higher harmonics to have
// decayed (amp = 1/i) well below audible significance.
const PartialCount = 32

// Overtones returns the harmonic series of a tone at the given
// fundamental, with amplitude falling off as 1/i (a sawtooth-like
// spectrum), matching the reference overtone weighting used throughout
// the dissonance-curve literature this system implements.
func Overtones(fundamentalHz float64) []Partial {
	partials := make([]Partial, PartialCount)
	for i := 1; i <= PartialCount; i++ {
		partials[i-1] = Partial{
			Hz:  fundamentalHz * float64(i),
			Amp: 1 / float64(i),
		}
	}
	return partials
}

// pitchSpace converts every partial's Hz to a PitchCurve's coordinate
// space, keeping amplitudes unchanged.
func pitchSpace(partials []Partial, curve PitchCurve) []Partial {
	out := make([]Partial, len(partials))
	for i, p := range partials {
		out[i] = Partial{Hz: curve.Eval(p.Hz), Amp: p.Amp}
	}
	return out
}

// Dissonance computes the aggregate roughness between two tones' overtone
// series: the sum, over every pair of partials (one from each series), of
// the pair's OverlapCurve score weighted by the product of their
// amplitudes.
func Dissonance(aHz, bHz float64, pitch PitchCurve, overlap OverlapCurve) float64 {
	a := pitchSpace(Overtones(aHz), pitch)
	b := pitchSpace(Overtones(bHz), pitch)

	var sum float64
	for _, pa := range a {
		for _, pb := range b {
			sum += overlap.Eval(pa.Hz, pb.Hz) * pa.Amp * pb.Amp
		}
	}
	return sum
}
