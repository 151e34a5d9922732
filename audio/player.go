package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tinycandle/parameter"
)

// Player plays a live Hum on the default audio device
// It is a pwm.Output so it can sit in a pwm.Multi next to the LEDs
type Player struct {
	mu     sync.Mutex
	hum    *Hum
	closed bool
}

// NewPlayer initializes the speaker and starts the hum silent
func NewPlayer(seed uint16) (*Player, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	p := &Player{hum: NewHum(rate, seed)}
	speaker.Play(&effects.Volume{Streamer: p.hum, Base: 2, Volume: parameter.AudioGain})
	return p, nil
}

func (p *Player) SetDuty(a, b uint8) { p.hum.SetDuty(a, b) }
func (p *Player) Disable()           { p.hum.Disable() }

// Close stops playback and releases the audio device
// Must be idempotent - safe to call multiple times
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}
