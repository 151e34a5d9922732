// Command tinycandle simulates a flickering tealight and drives two LED pairs with it
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/tinycandle/core"
)

const usage = `usage: tinycandle <command> [flags]

commands:
  run       live flame in the terminal, trace on stdout when not a terminal
  trace     print ticks as "<a> <b>" lines
  wav       render ticks as a stereo WAV file
  plot      render ticks as a PNG chart
  inspect   step the simulation interactively

common flags: -config -firmware -seed -scaling -gusts -bias -delay -log-level -log-file
run "tinycandle <command> -h" for command flags
`

func main() {
	// Panic Recovery: Ensure terminal is reset even if the flame loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	name, args := os.Args[1], os.Args[2:]
	var err error
	switch name {
	case "run":
		err = runCmd(args)
	case "trace":
		err = traceCmd(args)
	case "wav":
		err = wavCmd(args)
	case "plot":
		err = plotCmd(args)
	case "inspect":
		err = inspectCmd(args)
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", name, usage)
		os.Exit(2)
	}

	if err != nil && err != flag.ErrHelp {
		fmt.Fprintf(os.Stderr, "tinycandle %s: %v\n", name, err)
		os.Exit(1)
	}
}
