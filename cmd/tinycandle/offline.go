package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/tinycandle/audio"
	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/config"
	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/plot"
	"github.com/lixenwraith/tinycandle/pwm"
)

var errNoOutput = errors.New("-o is required")

// offlineFlags are shared by the commands that render a fixed number of ticks
type offlineFlags struct {
	common *config.Flags
	ticks  int
	out    string
}

func parseOffline(name string, args []string) (*offlineFlags, config.Settings, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o := &offlineFlags{common: config.RegisterFlags(fs)}
	fs.IntVar(&o.ticks, "n", parameter.DefaultTraceTicks, "number of ticks")
	fs.StringVar(&o.out, "o", "", "output `file`")
	if err := fs.Parse(args); err != nil {
		return nil, config.Settings{}, err
	}
	if o.ticks <= 0 {
		return nil, config.Settings{}, fmt.Errorf("tick count %d must be positive", o.ticks)
	}
	s, err := o.common.Resolve()
	if err != nil {
		return nil, s, err
	}
	return o, s, nil
}

func traceCmd(args []string) error {
	o, s, err := parseOffline("trace", args)
	if err != nil {
		return err
	}
	frames, err := candle.Simulate(s.Candle, o.ticks)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := pwm.WriteTrace(w, frames); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

func wavCmd(args []string) error {
	o, s, err := parseOffline("wav", args)
	if err != nil {
		return err
	}
	if o.out == "" {
		return errNoOutput
	}
	frames, err := candle.Simulate(s.Candle, o.ticks)
	if err != nil {
		return err
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	if err := audio.WriteWAV(f, frames, s.Delay, s.Candle.Seed); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func plotCmd(args []string) error {
	o, s, err := parseOffline("plot", args)
	if err != nil {
		return err
	}
	if o.out == "" {
		return errNoOutput
	}
	frames, err := candle.Simulate(s.Candle, o.ticks)
	if err != nil {
		return err
	}

	lo, hi := s.Candle.DutyRange()
	opts := plot.Options{
		Interval: s.Delay,
		Title:    fmt.Sprintf("seed 0x%04X  %s  gusts %v", s.Candle.Seed, s.Candle.Scaling, s.Candle.Gusts),
		Bias:     uint8(s.Candle.Bias),
		Lo:       lo,
		Hi:       hi,
	}

	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	if err := plot.WritePNG(f, frames, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
