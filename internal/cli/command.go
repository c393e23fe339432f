package cli

import (
	"errors"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// globals carries the parsed global flags every subcommand needs,
// following calvinalkan-agent-task/internal/cli/run.go's pattern of
// resolving shared config once in Run and threading it into each
// command rather than re-parsing per subcommand.
type globals struct {
	cacheDir string
	quiet    bool
	noQuiet  bool
	verbose  int
}

// command defines one dissonmap subcommand, mirroring the
// Command struct in calvinalkan-agent-task/internal/cli/command.go:
// a FlagSet plus an Exec closure, with Run() handling parse-error and
// --help reporting uniformly across subcommands.
type command struct {
	Name  string
	Usage string
	Short string
	Flags *flag.FlagSet
	Exec  func(g globals, out, errOut io.Writer, args []string) int
}

func (c *command) run(g globals, out, errOut io.Writer, args []string) int {
	c.Flags.SetOutput(errOut)
	c.Flags.Usage = func() {
		fprintf(errOut, "Usage: dissonmap %s\n\n", c.Usage)
		fprintf(errOut, "%s\n\n", c.Short)
		fprintln(errOut, "Flags:")
		c.Flags.PrintDefaults()
	}

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fprintln(errOut, "error:", err)
		return 1
	}

	return c.Exec(g, out, errOut, c.Flags.Args())
}

func commandNames(cmds []*command) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
