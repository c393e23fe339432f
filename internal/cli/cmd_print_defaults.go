package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/arlojs/dissonmap/internal/config"
)

func printDefaultsCommand() *command {
	return &command{
		Name:  "print-defaults",
		Usage: "print-defaults",
		Short: "Print the default configuration file to the console",
		Flags: flag.NewFlagSet("print-defaults", flag.ContinueOnError),
		Exec: func(g globals, out, errOut io.Writer, args []string) int {
			if err := config.PrintDefaults(out); err != nil {
				fprintln(errOut, "error:", err)
				return 1
			}
			return 0
		},
	}
}
