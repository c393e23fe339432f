package mapcompute

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/render"
)

const (
	valueTagBlock     = 1
	valueTagHistogram = 2
)

// Codec implements cache.ValueCodec[envelope.Value] for this package's two
// value variants. It's the one place that needs to know about every
// variant — adding a third value kind to this domain means adding one
// case here and nowhere else in the cache package.
type Codec struct{}

// Encode implements cache.ValueCodec.
func (Codec) Encode(w io.Writer, v envelope.Value) error {
	switch val := v.(type) {
	case BlockValue:
		return encodeBlock(w, val)
	case HistogramValue:
		return encodeHistogram(w, val)
	default:
		return fmt.Errorf("mapcompute: unknown cache value variant %T", v)
	}
}

// Decode implements cache.ValueCodec.
func (Codec) Decode(r io.Reader) (envelope.Value, error) {
	var tagBuf [1]byte
	if _, err := io.ReadFull(r, tagBuf[:]); err != nil {
		return nil, err // clean io.EOF here is the normal end of stream
	}
	switch tagBuf[0] {
	case valueTagBlock:
		return decodeBlock(r)
	case valueTagHistogram:
		return decodeHistogram(r)
	default:
		return nil, fmt.Errorf("mapcompute: unknown on-disk value tag %d", tagBuf[0])
	}
}

func encodeBlock(w io.Writer, v BlockValue) error {
	if err := writeByte(w, valueTagBlock); err != nil {
		return err
	}
	for _, field := range []uint32{v.Range.Pos.X, v.Range.Pos.Y, v.Range.Size.X, v.Range.Size.Y} {
		if err := writeUint32(w, field); err != nil {
			return err
		}
	}
	data := v.Payload.Bytes()
	if err := writeUint32(w, uint32(len(data))); err != nil {
		return err
	}
	for _, f := range data {
		if err := writeFloat64(w, f); err != nil {
			return err
		}
	}
	return nil
}

func decodeBlock(r io.Reader) (envelope.Value, error) {
	fields := make([]uint32, 4)
	for i := range fields {
		v, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	data := make([]float64, n)
	for i := range data {
		f, err := readFloat64(r)
		if err != nil {
			return nil, err
		}
		data[i] = f
	}
	return BlockValue{
		Range: render.TileRange{
			Pos:  render.Point{X: fields[0], Y: fields[1]},
			Size: render.Point{X: fields[2], Y: fields[3]},
		},
		Payload: envelope.Own(data),
	}, nil
}

func encodeHistogram(w io.Writer, v HistogramValue) error {
	if err := writeByte(w, valueTagHistogram); err != nil {
		return err
	}
	for _, f := range []float64{v.Min, v.Max, v.Mean} {
		if err := writeFloat64(w, f); err != nil {
			return err
		}
	}
	if err := writeUint32(w, uint32(len(v.Buckets))); err != nil {
		return err
	}
	for _, b := range v.Buckets {
		if err := writeUint64(w, b); err != nil {
			return err
		}
	}
	return nil
}

func decodeHistogram(r io.Reader) (envelope.Value, error) {
	var h HistogramValue
	var err error
	if h.Min, err = readFloat64(r); err != nil {
		return nil, err
	}
	if h.Max, err = readFloat64(r); err != nil {
		return nil, err
	}
	if h.Mean, err = readFloat64(r); err != nil {
		return nil, err
	}
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	h.Buckets = make([]uint64, n)
	for i := range h.Buckets {
		if h.Buckets[i], err = readUint64(r); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeFloat64(w io.Writer, v float64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])
	return err
}

func readFloat64(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}
