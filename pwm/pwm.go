// Package pwm is the output boundary of the flame: two 8-bit duty channels
// and the sinks that consume them
package pwm

import "sync"

// Channel identifies one of the two LED pair outputs
type Channel uint8

const (
	// ChannelA drives LED1/2
	ChannelA Channel = iota
	// ChannelB drives LED3/4
	ChannelB
	ChannelCount
)

// MaxDuty is the full-on value of an 8-bit channel
const MaxDuty = 255

// Frame holds one tick of output, indexed by Channel
type Frame [ChannelCount]uint8

// Output is the abstract two-channel PWM sink driven once per tick
type Output interface {
	// SetDuty updates both channels, called once per tick while enabled
	SetDuty(a, b uint8)

	// Disable turns the LEDs off (pins released, MOSFET off) until the next SetDuty
	Disable()
}

// Discard is an Output that drops everything
var Discard Output = discard{}

type discard struct{}

func (discard) SetDuty(a, b uint8) {}
func (discard) Disable()           {}

// Multi fans one duty stream out to several outputs in order
type Multi []Output

func (m Multi) SetDuty(a, b uint8) {
	for _, o := range m {
		o.SetDuty(a, b)
	}
}

func (m Multi) Disable() {
	for _, o := range m {
		o.Disable()
	}
}

// Recorder keeps every frame it receives, safe for concurrent readers
type Recorder struct {
	mu       sync.Mutex
	frames   []Frame
	disabled int
	enabled  bool
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{frames: make([]Frame, 0, capacity)}
}

func (r *Recorder) SetDuty(a, b uint8) {
	r.mu.Lock()
	r.frames = append(r.frames, Frame{a, b})
	r.enabled = true
	r.mu.Unlock()
}

func (r *Recorder) Disable() {
	r.mu.Lock()
	r.disabled++
	r.enabled = false
	r.mu.Unlock()
}

// Frames returns a copy of the recorded frames
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Len returns the number of recorded frames
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Disables returns how many times the outputs were switched off
func (r *Recorder) Disables() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled
}

// Enabled reports whether the last call was SetDuty
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}
