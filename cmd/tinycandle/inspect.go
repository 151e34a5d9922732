package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/config"
	"github.com/lixenwraith/tinycandle/vmath"
)

// maxStepPrint caps the frames echoed by one step command, longer runs print the last frame only
const maxStepPrint = 32

// inspector steps one flame by hand
type inspector struct {
	flame *candle.Flame
	src   *vmath.LFSR
	out   io.Writer
}

func newInspector(cfg candle.Config, out io.Writer) (*inspector, error) {
	flame, err := candle.New(cfg)
	if err != nil {
		return nil, err
	}
	return &inspector{flame: flame, src: cfg.NewSource(), out: out}, nil
}

func (in *inspector) prompt() string {
	st := in.flame.Snapshot()
	return fmt.Sprintf("#%d (lfsr 0x%04X)> ", st.Ticks, in.src.State())
}

// exec runs one command line, returns false when the session should end
func (in *inspector) exec(line string) bool {
	command, arg, hasArg := strings.Cut(strings.TrimSpace(line), " ")
	if hasArg {
		arg = strings.TrimSpace(arg)
		hasArg = arg != ""
	}

	switch command {
	case "step", "s":
		n := 1
		if hasArg {
			v, err := strconv.Atoi(arg)
			if err != nil || v <= 0 {
				fmt.Fprintln(in.out, "invalid argument")
				break
			}
			n = v
		}
		for i := 0; i < n; i++ {
			a, b := in.flame.Tick(in.src)
			if n <= maxStepPrint || i == n-1 {
				fmt.Fprintf(in.out, "%d %d\n", a, b)
			}
		}

	case "state", "st":
		st := in.flame.Snapshot()
		a, b := in.flame.Duty()
		fmt.Fprintf(in.out, "duty     %d %d\n", a, b)
		fmt.Fprintf(in.out, "center   %d %d\n", st.Center[0], st.Center[1])
		fmt.Fprintf(in.out, "velocity %d %d\n", st.Velocity[0], st.Velocity[1])
		fmt.Fprintf(in.out, "uncalm   %d (dir %+d)\n", st.Uncalm, st.UncalmDir)
		fmt.Fprintf(in.out, "count    %d\n", st.TickCount)
		fmt.Fprintf(in.out, "ticks    %d gusts %d\n", st.Ticks, st.Gusts)
		fmt.Fprintf(in.out, "lfsr     0x%04X %s\n", in.src.State(), in.src.Scaling())

	case "reset", "r":
		in.flame.Reset()
		in.src.Reset()
		fmt.Fprintln(in.out, "reset to power-on state")

	case "exit", "quit", "q":
		return false

	case "":

	default:
		fmt.Fprintf(in.out, "unknown command %q (step [n], state, reset, exit)\n", command)
	}
	return true
}

func inspectCmd(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	common := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := common.Resolve()
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		EOFPrompt:       "exit",
		InterruptPrompt: "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("exit"),
			readline.PcItem("reset"),
			readline.PcItem("state"),
			readline.PcItem("step"),
		),
	})
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}
	defer rl.Close()

	in, err := newInspector(s.Candle, rl.Stdout())
	if err != nil {
		return err
	}

	lastCommand := ""
	for {
		rl.SetPrompt(in.prompt())

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		// Empty line repeats the previous command
		if strings.TrimSpace(line) == "" {
			line = lastCommand
		} else {
			lastCommand = line
		}

		if !in.exec(line) {
			return nil
		}
	}
}
