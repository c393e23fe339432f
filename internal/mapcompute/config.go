package mapcompute

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Matrix3 is a row-major 3x3 homogeneous transform applied to normalized
// pixel coordinates before they're mapped to frequencies. The zero value
// is NOT the identity; use IdentityMatrix3.
type Matrix3 [9]float64

// IdentityMatrix3 leaves coordinates unchanged.
var IdentityMatrix3 = Matrix3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// Apply transforms (x, y) through the matrix as a homogeneous point,
// perspective-dividing by the resulting w.
func (m Matrix3) Apply(x, y float64) (float64, float64) {
	u := m[0]*x + m[1]*y + m[2]
	v := m[3]*x + m[4]*y + m[5]
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		w = 1
	}
	return u / w, v / w
}

// Config fully determines a dissonance map's content: its resolution, the
// view transform from pixel space to pitch space, the base frequency the
// view is anchored to, and the pitch/overlap curves used to score
// roughness. Two Configs that Encode to the same bytes are defined to
// produce the same map and share cache state.
type Config struct {
	Width, Height uint32
	View          Matrix3
	BaseFrequency float64
	Pitch         PitchCurve
	Overlap       OverlapCurve
}

// CacheKeyTag implements envelope.Key.
func (Config) CacheKeyTag() string { return "map" }

// Encode canonically serializes the Config for fingerprinting. Width and
// height use variable-width integers; everything else (the view matrix,
// base frequency, and the two single-byte curve tags) is fixed-width, matching
// the split between key and value encoding used throughout this cache
// format (see internal/cache/format.go).
func (c Config) Encode() []byte {
	var buf bytes.Buffer
	var varintBuf [binary.MaxVarintLen32]byte
	n := binary.PutUvarint(varintBuf[:], uint64(c.Width))
	buf.Write(varintBuf[:n])
	n = binary.PutUvarint(varintBuf[:], uint64(c.Height))
	buf.Write(varintBuf[:n])

	var f64Buf [8]byte
	putFixed := func(v float64) {
		binary.LittleEndian.PutUint64(f64Buf[:], math.Float64bits(v))
		buf.Write(f64Buf[:])
	}
	for _, f := range c.View {
		putFixed(f)
	}
	putFixed(c.BaseFrequency)
	buf.WriteByte(byte(c.Pitch))
	buf.WriteByte(byte(c.Overlap))
	return buf.Bytes()
}
