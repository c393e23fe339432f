package cli

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

func cleanCommand() *command {
	return &command{
		Name:  "clean",
		Usage: "clean",
		Short: "Empty the cache folder",
		Flags: flag.NewFlagSet("clean", flag.ContinueOnError),
		Exec: func(g globals, out, errOut io.Writer, args []string) int {
			store := resolveStore(g.cacheDir)
			if err := store.Clean(); err != nil {
				fprintln(errOut, "error:", fmt.Errorf("cli: cleaning cache: %w", err))
				return 1
			}
			return 0
		},
	}
}
