package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/core"
	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
)

// ErrAlreadyRunning is returned when a second loop is started on the same scheduler
var ErrAlreadyRunning = errors.New("scheduler already running")

// Options configures a Scheduler, zero fields take the parameter defaults
// A negative Debounce disables debouncing
type Options struct {
	Interval time.Duration
	Debounce time.Duration
	Clock    Clock
	Logger   *zerolog.Logger
}

// Scheduler drives one flame at a fixed tick and owns its sleep state
// Tick is only ever called from the loop goroutine; the mutex lets observers snapshot between ticks
type Scheduler struct {
	mu    sync.Mutex
	flame *candle.Flame
	src   candle.Source
	out   pwm.Output

	interval time.Duration
	debounce time.Duration
	clock    Clock
	log      zerolog.Logger

	buttonCh  chan struct{}
	pressMu   sync.Mutex
	lastPress time.Time

	asleep  atomic.Bool
	running atomic.Bool
	ticks   atomic.Uint64
	sleeps  atomic.Uint64

	// Start/Stop lifecycle
	cancel    context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	err       error
}

// NewScheduler wires a flame, its random source and the output it drives
func NewScheduler(flame *candle.Flame, src candle.Source, out pwm.Output, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = parameter.CandleDelay
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	} else if opts.Debounce == 0 {
		opts.Debounce = parameter.ButtonDebounce
	}
	if opts.Clock == nil {
		opts.Clock = NewTimeProvider()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if out == nil {
		out = pwm.Discard
	}

	return &Scheduler{
		flame:    flame,
		src:      src,
		out:      out,
		interval: opts.Interval,
		debounce: opts.Debounce,
		clock:    opts.Clock,
		log:      log.With().Str("component", "scheduler").Logger(),
		buttonCh: make(chan struct{}, parameter.ControlQueueSize),
		done:     make(chan struct{}),
	}
}

// Press is the button: toggles sleep between ticks
// Returns false when the press is inside the debounce window or the queue is full
func (s *Scheduler) Press() bool {
	now := s.clock.Now()

	s.pressMu.Lock()
	if !s.lastPress.IsZero() && now.Sub(s.lastPress) < s.debounce {
		s.pressMu.Unlock()
		return false
	}
	s.lastPress = now
	s.pressMu.Unlock()

	select {
	case s.buttonCh <- struct{}{}:
		return true
	default:
		return false
	}
}

// Asleep reports whether outputs are switched off and ticking is suspended
func (s *Scheduler) Asleep() bool { return s.asleep.Load() }

// Ticks returns the number of ticks executed since construction
func (s *Scheduler) Ticks() uint64 { return s.ticks.Load() }

// Sleeps returns how many times the scheduler entered sleep
func (s *Scheduler) Sleeps() uint64 { return s.sleeps.Load() }

// Interval returns the tick period
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Snapshot copies the flame state between ticks
func (s *Scheduler) Snapshot() candle.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flame.Snapshot()
}

// Step executes one tick immediately and forwards the duties to the output
func (s *Scheduler) Step() (a, b uint8) {
	s.mu.Lock()
	a, b = s.flame.Tick(s.src)
	s.mu.Unlock()

	s.out.SetDuty(a, b)
	s.ticks.Add(1)
	return a, b
}

// Run blocks in the tick loop until ctx is cancelled, outputs are disabled on return
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)
	defer s.out.Disable()

	s.log.Info().Dur("interval", s.interval).Msg("flame loop started")

	timer := time.NewTimer(s.interval)
	stopTimer(timer)
	defer timer.Stop()

	next := s.clock.Now()
	for {
		// Pending button presses are applied between ticks only
		select {
		case <-ctx.Done():
			s.log.Info().Uint64("ticks", s.ticks.Load()).Msg("flame loop stopped")
			return ctx.Err()
		case <-s.buttonCh:
			s.toggleSleep()
			if !s.asleep.Load() {
				next = s.clock.Now()
			}
			continue
		default:
		}

		if s.asleep.Load() {
			select {
			case <-ctx.Done():
				continue
			case <-s.buttonCh:
				s.toggleSleep()
				next = s.clock.Now()
			}
			continue
		}

		now := s.clock.Now()
		if !now.Before(next) {
			s.Step()
			next = next.Add(s.interval)

			// Drop the backlog instead of bursting after a stall
			if now.Sub(next) > s.interval*parameter.MaxBehindTicks {
				s.log.Debug().Dur("behind", now.Sub(next)).Msg("tick backlog dropped")
				next = now.Add(s.interval)
			}
		}

		wait := next.Sub(s.clock.Now())
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.buttonCh:
			stopTimer(timer)
			s.toggleSleep()
			if !s.asleep.Load() {
				next = s.clock.Now()
			}
		case <-ctx.Done():
			stopTimer(timer)
		}
	}
}

// stopTimer stops t and drains a pending fire so the next Reset starts clean
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func (s *Scheduler) toggleSleep() {
	if s.asleep.Load() {
		s.asleep.Store(false)
		s.log.Info().Msg("wake")
		return
	}
	s.asleep.Store(true)
	s.sleeps.Add(1)
	s.out.Disable()
	s.log.Info().Uint64("ticks", s.ticks.Load()).Msg("sleep")
}

// Start launches Run on a crash-guarded goroutine
// Only the first call has an effect
func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		core.Go(func() {
			defer close(s.done)
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.err = err
			}
		})
	})
}

// Stop cancels a loop launched by Start and waits for it to exit
// Must be idempotent - safe to call multiple times
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
			<-s.done
		}
	})
	return s.err
}

// Done is closed when a loop launched by Start exits
func (s *Scheduler) Done() <-chan struct{} { return s.done }
