package cli

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/arlojs/dissonmap/internal/cache"
	"github.com/arlojs/dissonmap/internal/cache/envelope"
	"github.com/arlojs/dissonmap/internal/cancel"
	"github.com/arlojs/dissonmap/internal/config"
	"github.com/arlojs/dissonmap/internal/mapcompute"
)

func isInteractive(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// generateOpts is the shared option set for "generate" and "watch",
// mirroring original_source/src/disson/cli.rs's GenerateOpts.
type generateOpts struct {
	configPath string
	size       string
	typeFlag   string
	out        string
}

func registerGenerateFlags(fs *flag.FlagSet, o *generateOpts) {
	fs.StringVar(&o.size, "size", "", "Override the output size: <n>w, <n>h, <x>%, or <w>x<h>")
	fs.StringVar(&o.typeFlag, "type", "", "Output format: csv, tsv, or png (requires --out)")
	fs.StringVar(&o.out, "out", "-", "Output file, or \"-\" for stdout")
}

// loadMapcomputeConfig loads the generate-config file, applies an
// optional --size override, and resolves it to a mapcompute.Config.
func loadMapcomputeConfig(o generateOpts) (mapcompute.Config, error) {
	gen, err := config.Load(o.configPath)
	if err != nil {
		return mapcompute.Config{}, err
	}

	if o.size != "" {
		override, err := config.ParseSizeOverride(o.size)
		if err != nil {
			return mapcompute.Config{}, err
		}
		if err := override.Apply(&gen.Map); err != nil {
			return mapcompute.Config{}, err
		}
	}

	return gen.Map.ToMapcomputeConfig()
}

// renderOnce runs one full compute+write cycle for "generate"/"watch",
// sharing the driver/store/format wiring between both subcommands.
// progressOut, typically errOut, gets an in-place progress bar but only
// when it is an attached terminal — piping/tests never see it.
func renderOnce(store cache.Store[envelope.Value], o generateOpts, tok *cancel.Token, progressOut io.Writer) error {
	cfg, err := loadMapcomputeConfig(o)
	if err != nil {
		return err
	}

	format, err := resolveFormat(o.typeFlag, o.out)
	if err != nil {
		return err
	}

	d := &mapcompute.Driver{Store: store}
	if f, ok := progressOut.(*os.File); ok && isInteractive(f) {
		pb := newProgressBar(f, "render", 1)
		d.Progress = pb.asRenderProgress
		defer pb.Finish()
	}

	m, err := d.Compute(cfg, tok)
	if err != nil {
		return fmt.Errorf("cli: computing dissonance map: %w", err)
	}

	if err := writeMap(m, o.out, format, tok); err != nil {
		return fmt.Errorf("cli: writing output: %w", err)
	}
	return nil
}
