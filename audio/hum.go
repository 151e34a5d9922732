// Package audio sonifies the flame: each PWM channel modulates a low hum
// with crackle noise, left and right
package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
	"github.com/lixenwraith/tinycandle/vmath"
)

// Hum is a beep.Streamer and a pwm.Output: the latest duties set the loudness of each stereo side
type Hum struct {
	rate  beep.SampleRate
	noise *vmath.LFSR

	// duty packs channel A in bits 8-15 and channel B in bits 0-7
	duty atomic.Uint32
	on   atomic.Bool

	level [pwm.ChannelCount]float64
	phase [pwm.ChannelCount]float64
	freq  [pwm.ChannelCount]float64
	lp    [pwm.ChannelCount]float64
}

// NewHum creates a silent hum; seed drives the crackle noise register
func NewHum(rate beep.SampleRate, seed uint16) *Hum {
	return &Hum{
		rate:  rate,
		noise: vmath.NewLFSR(seed, vmath.ScaleModulo),
		freq:  [pwm.ChannelCount]float64{parameter.HumFrequency, parameter.HumFrequency + parameter.HumDetune},
	}
}

func (h *Hum) SetDuty(a, b uint8) {
	h.duty.Store(uint32(a)<<8 | uint32(b))
	h.on.Store(true)
}

func (h *Hum) Disable() {
	h.on.Store(false)
}

func (h *Hum) targets() [pwm.ChannelCount]float64 {
	if !h.on.Load() {
		return [pwm.ChannelCount]float64{}
	}
	d := h.duty.Load()
	return [pwm.ChannelCount]float64{
		float64(d>>8&0xFF) / pwm.MaxDuty,
		float64(d&0xFF) / pwm.MaxDuty,
	}
}

func (h *Hum) Stream(samples [][2]float64) (n int, ok bool) {
	target := h.targets()
	step := 1.0 / float64(h.rate)

	for i := range samples {
		for ch := range h.level {
			// Slew toward the target so duty steps do not click
			h.level[ch] += vmath.Clamp(target[ch]-h.level[ch], -parameter.LevelSlew, parameter.LevelSlew)

			// LFSR register as Q0.16 noise in [-1, 1), one-pole low-pass for crackle
			noise := float64(h.noise.Step())/32768 - 1
			h.lp[ch] += parameter.CrackleSmoothing * (noise - h.lp[ch])

			tone := math.Sin(2 * math.Pi * h.phase[ch])
			h.phase[ch] += h.freq[ch] * step
			h.phase[ch] -= math.Floor(h.phase[ch])

			samples[i][ch] = h.level[ch] * ((1-parameter.CrackleMix)*tone + parameter.CrackleMix*h.lp[ch])
		}
	}
	return len(samples), true
}

func (h *Hum) Err() error { return nil }
