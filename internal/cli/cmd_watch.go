package cli

import (
	"io"
	"log"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/arlojs/dissonmap/internal/cancel"
	"github.com/arlojs/dissonmap/internal/runner"
)

// watchPollInterval is how often Watch restats the config file. The
// original polls via a Tokio interval of the same order of magnitude
// (see original_source/src/disson/disson/mod.rs's watch).
const watchPollInterval = 500 * time.Millisecond

func watchCommand() *command {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	o := &generateOpts{}
	registerGenerateFlags(fs, o)

	return &command{
		Name:  "watch",
		Usage: "watch <config> [--size n] [--type fmt] [--out path]",
		Short: "Generate a dissonance map from the given config, and watch it for changes",
		Flags: fs,
		Exec: func(g globals, out, errOut io.Writer, args []string) int {
			if len(args) < 1 {
				fprintln(errOut, "error: a config file path is required")
				return 1
			}
			o.configPath = args[0]

			store := resolveStore(g.cacheDir)
			outcome := runner.Run(func(tok *cancel.Token) (int, error) {
				events := runner.Watch(tok, o.configPath, watchPollInterval)
				for {
					if err := renderOnce(store, *o, tok, errOut); err != nil {
						return 0, err
					}
					log.Printf("watching %s for changes...", o.configPath)

					// events closes once tok is cancelled, so a receive here
					// can mean either "the file changed" or "we're shutting
					// down" — TryWeak disambiguates before looping back into
					// another render.
					<-events
					if err := tok.TryWeak(); err != nil {
						return 0, err
					}
				}
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
