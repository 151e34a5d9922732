package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
	AudioBitDepth   = 16
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Flame sonification
const (
	// HumFrequency is the base tone of the flame hum in Hz
	HumFrequency = 110.0

	// HumDetune is the frequency offset of the second channel's tone in Hz
	HumDetune = 1.5

	// CrackleMix is the share of filtered noise in each channel, the rest is tone
	CrackleMix = 0.35

	// CrackleSmoothing is the one-pole low-pass coefficient of the crackle noise
	CrackleSmoothing = 0.08

	// AudioGain is the master output gain in beep volume units (log2)
	AudioGain = -1.0

	// LevelSlew limits per-sample amplitude change to avoid clicks when duty jumps
	LevelSlew = 0.002
)
