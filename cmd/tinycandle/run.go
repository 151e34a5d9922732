package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/lixenwraith/tinycandle/audio"
	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/config"
	"github.com/lixenwraith/tinycandle/core"
	"github.com/lixenwraith/tinycandle/engine"
	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
	"github.com/lixenwraith/tinycandle/render"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	common := config.RegisterFlags(fs)
	headless := fs.Bool("headless", false, "write the trace to stdout even on a terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := common.Resolve()
	if err != nil {
		return err
	}

	interactive := !*headless && term.IsTerminal(int(os.Stdout.Fd()))

	// The terminal view owns the screen, console logs would corrupt it
	var console io.Writer = os.Stderr
	if interactive {
		console = io.Discard
	}
	log, closer, err := s.Logger(console)
	if err != nil {
		return err
	}
	defer closer.Close()

	flame, err := candle.New(s.Candle)
	if err != nil {
		return err
	}
	src := s.Candle.NewSource()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var outs pwm.Multi
	if s.Sound {
		player, err := audio.NewPlayer(s.Candle.Seed)
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer player.Close()
			outs = append(outs, player)
		}
	}

	log.Info().
		Uint16("seed", s.Candle.Seed).
		Stringer("scaling", s.Candle.Scaling).
		Bool("gusts", s.Candle.Gusts).
		Dur("delay", s.Delay).
		Bool("interactive", interactive).
		Msg("starting flame")

	if interactive {
		return runTerminal(ctx, cancel, s, flame, src, outs, log)
	}
	return runHeadless(ctx, s, flame, src, outs, log)
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, s config.Settings,
	flame *candle.Flame, src candle.Source, outs pwm.Multi, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	core.OnCrash(screen.Fini)

	view := render.NewView(screen)
	outs = append(outs, view)

	sched := engine.NewScheduler(flame, src, outs, engine.Options{Interval: s.Delay, Logger: &log})
	stopButton := watchButton(sched.Press)
	defer stopButton()

	sched.Start(ctx)
	defer sched.Stop()

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					cancel()
				case ev.Rune() == ' ', ev.Key() == tcell.KeyEnter:
					sched.Press()
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	})

	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return sched.Stop()
		case <-sched.Done():
			return sched.Stop()
		case <-ticker.C:
			view.Draw(render.Status{
				State:     sched.Snapshot(),
				MaxUncalm: s.Candle.MaxUncalm,
				Asleep:    sched.Asleep(),
				Interval:  sched.Interval(),
			})
		}
	}
}

func runHeadless(ctx context.Context, s config.Settings,
	flame *candle.Flame, src candle.Source, outs pwm.Multi, log zerolog.Logger) error {
	tw := pwm.NewTraceWriter(os.Stdout)
	outs = append(outs, tw)

	sched := engine.NewScheduler(flame, src, outs, engine.Options{Interval: s.Delay, Logger: &log})
	stopButton := watchButton(sched.Press)
	defer stopButton()

	sched.Start(ctx)

	ticker := time.NewTicker(parameter.TraceFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			err := sched.Stop()
			if ferr := tw.Flush(); ferr != nil {
				return fmt.Errorf("write trace: %w", ferr)
			}
			return err
		case <-sched.Done():
			return sched.Stop()
		case <-ticker.C:
			if err := tw.Flush(); err != nil {
				// Reader went away, nothing left to drive
				sched.Stop()
				return fmt.Errorf("write trace: %w", err)
			}
		}
	}
}
