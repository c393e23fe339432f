package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arlojs/dissonmap/internal/cancel"
	"github.com/arlojs/dissonmap/internal/mapcompute"
)

// mapFormat mirrors original_source/src/disson/cli.rs's MapFormat: a
// delimiter-separated variant (CSV/TSV) or PNG, which this build does not
// implement (see writeMap).
type mapFormat struct {
	delim rune // 0 for png
	isPNG bool
}

var (
	formatCSV = mapFormat{delim: ','}
	formatTSV = mapFormat{delim: '\t'}
	formatPNG = mapFormat{isPNG: true}
)

func parseMapFormat(s string) (mapFormat, error) {
	switch strings.ToLower(s) {
	case "csv":
		return formatCSV, nil
	case "tsv":
		return formatTSV, nil
	case "png":
		return formatPNG, nil
	default:
		return mapFormat{}, fmt.Errorf("cli: unknown --type %q, valid formats are csv, tsv, or png", s)
	}
}

// resolveFormat replays GenerateOpts::ty: an explicit --type always wins;
// otherwise stdout output defaults to TSV and file output is guessed from
// the extension.
func resolveFormat(typeFlag, outPath string) (mapFormat, error) {
	if typeFlag != "" {
		return parseMapFormat(typeFlag)
	}
	if outPath == "-" || outPath == "" {
		return formatTSV, nil
	}
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png":
		return formatPNG, nil
	case ".csv":
		return formatCSV, nil
	case ".tsv", ".txt", "":
		return formatTSV, nil
	default:
		return mapFormat{}, fmt.Errorf("cli: couldn't guess output format from file extension %q", filepath.Ext(outPath))
	}
}

// writeMap writes m to outPath (or stdout, for "-" or "") in the given
// format. PNG output is out of scope for this build (the original's
// image-encoding path is not part of this system's domain stack); it
// fails with a clear error instead of silently producing nothing.
func writeMap(m *mapcompute.Map, outPath string, format mapFormat, tok *cancel.Token) error {
	if format.isPNG {
		return fmt.Errorf("cli: PNG output is not available in this build, use --type csv or --type tsv")
	}

	if outPath == "-" || outPath == "" {
		return mapcompute.WriteXSV(os.Stdout, m, format.delim, tok)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cli: creating output file %s: %w", outPath, err)
	}
	defer f.Close()
	return mapcompute.WriteXSV(f, m, format.delim, tok)
}
