// Package cli wires the dissonmap subcommands together: clean, generate,
// watch, print-defaults, and a gui stub, all sharing the same global
// flags. Grounded on
// _examples/calvinalkan-agent-task/internal/cli/run.go's dispatch shape
// (global flag parsing, a command registry, consistent error/usage
// printing), adapted from the original's structopt-derived Opts/Subcommand
// enum (original_source/src/disson/cli.rs).
package cli

import (
	"io"
	"log"

	flag "github.com/spf13/pflag"
)

// Run parses args (excluding argv[0]) and dispatches to a subcommand.
// Returns the process exit code.
func Run(args []string, out, errOut io.Writer) int {
	globalFlags := flag.NewFlagSet("dissonmap", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(io.Discard)

	cacheDir := globalFlags.StringP("cache-dir", "c", "", `Cache directory to use, or "-" to disable caching`)
	quiet := globalFlags.BoolP("quiet", "q", false, "Suppress log output, warnings included; errors are still printed")
	noQuiet := globalFlags.Bool("no-quiet", false, "Always print info messages, even without a console")
	verbose := globalFlags.CountP("verbose", "v", "Output extra information to the console (repeatable)")
	help := globalFlags.BoolP("help", "h", false, "Show help")

	if err := globalFlags.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		return 1
	}

	g := globals{cacheDir: *cacheDir, quiet: *quiet, noQuiet: *noQuiet, verbose: *verbose}

	// --quiet discards every log.Printf line (cache cleaning, watch-loop
	// status and recoverable cache warnings alike); --no-quiet always wins,
	// matching
	// original_source/src/disson/cli.rs's conflicts_with relationship.
	if g.quiet && !g.noQuiet {
		log.SetOutput(io.Discard)
	}

	commands := []*command{
		cleanCommand(),
		generateCommand(),
		watchCommand(),
		printDefaultsCommand(),
		guiCommand(),
	}

	rest := globalFlags.Args()

	if *help || len(rest) == 0 {
		printUsage(out, commands)
		if *help {
			return 0
		}
		return 1
	}

	name, cmdArgs := rest[0], rest[1:]
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd.run(g, out, errOut, cmdArgs)
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	fprintln(errOut, "available commands:", commandNames(commands))
	return 1
}

func printUsage(w io.Writer, commands []*command) {
	fprintln(w, "dissonmap - render 2D dissonance maps over a frequency grid")
	fprintln(w)
	fprintln(w, "Usage: dissonmap [flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, `  -c, --cache-dir <dir>  Cache directory to use, or "-" to disable caching`)
	fprintln(w, "  -q, --quiet            Suppress log output, warnings included; errors are still printed")
	fprintln(w, "      --no-quiet         Always print info messages, even without a console")
	fprintln(w, "  -v, --verbose          Output extra information (repeatable)")
	fprintln(w)
	fprintln(w, "Commands:")
	for _, cmd := range commands {
		fprintf(w, "  %-50s %s\n", cmd.Usage, cmd.Short)
	}
}
