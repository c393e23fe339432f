// Command dissonmap renders 2D dissonance maps over a frequency grid.
package main

import (
	"os"

	"github.com/arlojs/dissonmap/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
