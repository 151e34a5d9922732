// Package candle simulates a candle flame as an underdamped 2-D spring
// perturbed by wind-scaled random pokes. Each tick yields two 8-bit duties.
package candle

import (
	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
	"github.com/lixenwraith/tinycandle/vmath"
)

// Source supplies bounded pseudo-random draws; *vmath.LFSR in production
type Source interface {
	// Next returns a value in [0, bound), bound is always positive
	Next(bound uint32) uint32
}

// State is a value copy of the simulation variables
type State struct {
	Center    [pwm.ChannelCount]int16
	Velocity  [pwm.ChannelCount]int32
	Uncalm    uint16
	UncalmDir int16
	TickCount uint8

	// Ticks and Gusts are lifetime counters, not part of the dynamics
	Ticks uint64
	Gusts uint64
}

// Flame owns the flame position, velocity and wind state
// Not safe for concurrent use: exactly one caller drives Tick
type Flame struct {
	cfg Config

	center   [pwm.ChannelCount]int16
	velocity [pwm.ChannelCount]int32

	uncalm    uint16
	uncalmDir int16

	// tickCount gates damping to every fourth tick, wraps at 256
	tickCount uint8

	ticks uint64
	gusts uint64
}

// New validates cfg and returns a flame in its power-on state
func New(cfg Config) (*Flame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &Flame{cfg: cfg}
	f.Reset()
	return f, nil
}

// Reset restores the power-on state: displaced to (MaxDev, MaxDev/2), at rest, calm
func (f *Flame) Reset() {
	f.center = [pwm.ChannelCount]int16{f.cfg.MaxDev, f.cfg.MaxDev / 2}
	f.velocity = [pwm.ChannelCount]int32{}
	f.uncalm = f.cfg.MinUncalm
	f.uncalmDir = f.cfg.UncalmInc
	f.tickCount = 0
	f.ticks = 0
	f.gusts = 0
}

// Config returns the validated configuration
func (f *Flame) Config() Config {
	return f.cfg
}

// Tick advances the simulation by one step and returns the duties for both channels
func (f *Flame) Tick(src Source) (a, b uint8) {
	cfg := &f.cfg

	// Rare gust, one roll per tick once the wind is past half strength
	if cfg.Gusts && f.uncalm > cfg.MaxUncalm/2 {
		if src.Next(parameter.GustRange) < parameter.GustOdds {
			f.uncalm = cfg.MaxUncalm * parameter.GustUncalmFactor
			f.gusts++
		}
	}

	// Random poke centered on zero, magnitude follows the wind
	var move [pwm.ChannelCount]int32
	bound := uint32(f.uncalm >> 8)
	offset := int32(f.uncalm >> 9)
	for i := range move {
		move[i] = int32(src.Next(bound)) - offset
	}

	// Triangular wind ramp, reverses only past the extremes
	if f.uncalm < cfg.MinUncalm {
		f.uncalmDir = cfg.UncalmInc
	}
	if f.uncalm > cfg.MaxUncalm {
		f.uncalmDir = -cfg.UncalmInc
	}
	f.uncalm = uint16(int32(f.uncalm) + int32(f.uncalmDir))

	f.tickCount++
	damp := f.tickCount&parameter.DampingMask == 0
	maxDev := int32(cfg.MaxDev)

	for i := range f.center {
		// Quarter-velocity Euler step, then hard saturation; velocity is left alone by the clamp
		c := int32(f.center[i]) + move[i] + f.velocity[i]>>2
		c = vmath.Clamp(c, -maxDev, maxDev)
		f.center[i] = int16(c)

		if damp {
			f.velocity[i] = vmath.MulDivTrunc(f.velocity[i], parameter.DampingNum, parameter.DampingDen)
		}

		// Hooke's law
		f.velocity[i] -= c
	}

	f.ticks++
	return f.duty(pwm.ChannelA), f.duty(pwm.ChannelB)
}

func (f *Flame) duty(ch pwm.Channel) uint8 {
	return uint8(vmath.Clamp(int32(f.cfg.Bias)+int32(f.center[ch]), 0, pwm.MaxDuty))
}

// Duty returns the current duties without advancing
func (f *Flame) Duty() (a, b uint8) {
	return f.duty(pwm.ChannelA), f.duty(pwm.ChannelB)
}

// Snapshot copies the current state
func (f *Flame) Snapshot() State {
	return State{
		Center:    f.center,
		Velocity:  f.velocity,
		Uncalm:    f.uncalm,
		UncalmDir: f.uncalmDir,
		TickCount: f.tickCount,
		Ticks:     f.ticks,
		Gusts:     f.gusts,
	}
}
