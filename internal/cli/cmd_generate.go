package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/arlojs/dissonmap/internal/cancel"
	"github.com/arlojs/dissonmap/internal/runner"
)

func generateCommand() *command {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	o := &generateOpts{}
	registerGenerateFlags(fs, o)

	return &command{
		Name:  "generate",
		Usage: "generate <config> [--size n] [--type fmt] [--out path]",
		Short: "Generate a dissonance map from the given config",
		Flags: fs,
		Exec: func(g globals, out, errOut io.Writer, args []string) int {
			if len(args) < 1 {
				fprintln(errOut, "error: a config file path is required")
				return 1
			}
			o.configPath = args[0]

			store := resolveStore(g.cacheDir)
			outcome := runner.Run(func(tok *cancel.Token) (int, error) {
				return 0, renderOnce(store, *o, tok, errOut)
			})

			if outcome.Cancelled {
				return 130
			}
			if outcome.Err != nil {
				fprintln(errOut, "error:", outcome.Err)
				return 1
			}
			return 0
		},
	}
}
