package mapcompute

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arlojs/dissonmap/internal/cancel"
)

// WriteXSV writes m in a delimiter-separated format: a header row of
// column indices, then one row per grid row prefixed with its row index.
// delim is typically ',' or '\t'. No third-party pack repo imports a CSV
// library (grep across _examples/*/go.mod turned up nothing); this uses
// encoding/csv because original_source/src/disson/disson/mod.rs's
// write_xsv builds on the same kind of writer (field-then-flush, one
// record per row) and stdlib's csv.Writer gives the same shape without
// inventing a dependency the corpus never reaches for.
func WriteXSV(w io.Writer, m *Map, delim rune, tok *cancel.Token) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := make([]string, 0, m.Width+1)
	header = append(header, "x/y")
	for x := uint32(0); x < m.Width; x++ {
		header = append(header, strconv.FormatUint(uint64(x), 10))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("mapcompute: writing xSV header: %w", err)
	}

	row := make([]string, m.Width+1)
	for y := uint32(0); y < m.Height; y++ {
		if err := tok.TryWeak(); err != nil {
			return err
		}

		row[0] = strconv.FormatUint(uint64(y), 10)
		start := y * m.Width
		for x := uint32(0); x < m.Width; x++ {
			row[x+1] = strconv.FormatFloat(m.Data[start+x], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("mapcompute: writing xSV row %d: %w", y, err)
		}

		if err := tok.TryWeak(); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("mapcompute: flushing xSV row %d: %w", y, err)
		}
	}

	return nil
}
