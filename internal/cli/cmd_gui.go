package cli

import (
	"io"

	flag "github.com/spf13/pflag"
)

// guiCommand stubs the original's interactive GUI subcommand. Building an
// actual GUI is out of scope for this system (see SPEC_FULL.md's
// Non-goals); the subcommand still exists so "dissonmap gui" fails with a
// clear message instead of "unknown command".
func guiCommand() *command {
	return &command{
		Name:  "gui",
		Usage: "gui",
		Short: "Open the GUI to interactively configure and generate maps",
		Flags: flag.NewFlagSet("gui", flag.ContinueOnError),
		Exec: func(g globals, out, errOut io.Writer, args []string) int {
			fprintln(errOut, "gui not available in this build")
			return 1
		},
	}
}
