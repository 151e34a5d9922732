package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
)

// ErrEmptyTrace is returned when there is nothing to render
var ErrEmptyTrace = errors.New("empty trace")

// TraceStreamer plays a recorded duty trace through a Hum, one frame per tick interval
type TraceStreamer struct {
	hum     *Hum
	frames  []pwm.Frame
	perTick int
	idx     int
	pos     int
}

func NewTraceStreamer(frames []pwm.Frame, interval time.Duration, rate beep.SampleRate, seed uint16) *TraceStreamer {
	perTick := rate.N(interval)
	if perTick < 1 {
		perTick = 1
	}
	return &TraceStreamer{
		hum:     NewHum(rate, seed),
		frames:  frames,
		perTick: perTick,
	}
}

// Len returns the total number of samples the trace renders to
func (t *TraceStreamer) Len() int {
	return len(t.frames) * t.perTick
}

func (t *TraceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if t.idx >= len(t.frames) {
			return n, n > 0
		}
		if t.pos == 0 {
			f := t.frames[t.idx]
			t.hum.SetDuty(f[pwm.ChannelA], f[pwm.ChannelB])
		}
		chunk := min(t.perTick-t.pos, len(samples)-n)
		t.hum.Stream(samples[n : n+chunk])
		n += chunk
		t.pos += chunk
		if t.pos == t.perTick {
			t.pos = 0
			t.idx++
		}
	}
	return n, true
}

func (t *TraceStreamer) Err() error { return nil }

// Format is the PCM layout used for WAV export
func Format() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(parameter.AudioSampleRate),
		NumChannels: parameter.AudioChannels,
		Precision:   parameter.AudioBitDepth / 8,
	}
}

// WriteWAV renders frames at interval per tick to a 16-bit stereo WAV
func WriteWAV(w io.WriteSeeker, frames []pwm.Frame, interval time.Duration, seed uint16) error {
	if len(frames) == 0 {
		return ErrEmptyTrace
	}
	format := Format()
	src := NewTraceStreamer(frames, interval, format.SampleRate, seed)
	out := &effects.Volume{Streamer: src, Base: 2, Volume: parameter.AudioGain}
	if err := wav.Encode(w, out, format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
