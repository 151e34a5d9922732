package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/pwm"
)

func rms(samples [][2]float64, ch int) float64 {
	var sum float64
	for _, s := range samples {
		sum += s[ch] * s[ch]
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// TestHumSilentUntilDuty verifies no output before the first SetDuty
func TestHumSilentUntilDuty(t *testing.T) {
	h := NewHum(beep.SampleRate(44100), parameter.DefaultSeed)
	samples := make([][2]float64, 512)
	n, ok := h.Stream(samples)

	if !ok || n != len(samples) {
		t.Fatalf("expected full stream, got n=%d ok=%v", n, ok)
	}
	for i, s := range samples {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d should be silent, got %v", i, s)
		}
	}
	if h.Err() != nil {
		t.Errorf("expected no error, got: %v", h.Err())
	}
}

// TestHumSlew verifies amplitude ramps instead of stepping
func TestHumSlew(t *testing.T) {
	h := NewHum(beep.SampleRate(44100), parameter.DefaultSeed)
	h.SetDuty(pwm.MaxDuty, pwm.MaxDuty)

	samples := make([][2]float64, 1)
	h.Stream(samples)
	for ch := 0; ch < 2; ch++ {
		if math.Abs(samples[0][ch]) > parameter.LevelSlew {
			t.Errorf("channel %d first sample %f exceeds slew %f", ch, samples[0][ch], parameter.LevelSlew)
		}
	}
}

// TestHumRangeAndBalance checks samples stay in [-1, 1] and loudness follows duty per side
func TestHumRangeAndBalance(t *testing.T) {
	h := NewHum(beep.SampleRate(44100), parameter.DefaultSeed)
	h.SetDuty(255, 55)

	// Let the slew settle
	warm := make([][2]float64, 4096)
	h.Stream(warm)

	samples := make([][2]float64, 8192)
	h.Stream(samples)
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}

	left, right := rms(samples, 0), rms(samples, 1)
	if left <= right*2 {
		t.Errorf("duty 255 side should be much louder than duty 55 side: %f vs %f", left, right)
	}
}

func TestHumDisableFadesOut(t *testing.T) {
	h := NewHum(beep.SampleRate(44100), parameter.DefaultSeed)
	h.SetDuty(200, 200)
	h.Stream(make([][2]float64, 4096))

	h.Disable()
	// 1/LevelSlew samples are enough to reach silence
	h.Stream(make([][2]float64, int(1/parameter.LevelSlew)+1))

	samples := make([][2]float64, 256)
	h.Stream(samples)
	for i, s := range samples {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d should be silent after disable, got %v", i, s)
		}
	}
}

func TestHumDeterministic(t *testing.T) {
	render := func() [][2]float64 {
		h := NewHum(beep.SampleRate(44100), 0x1234)
		h.SetDuty(180, 90)
		s := make([][2]float64, 2048)
		h.Stream(s)
		return s
	}
	a, b := render(), render()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTraceStreamerLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	frames := []pwm.Frame{{255, 55}, {155, 155}, {55, 255}}
	ts := NewTraceStreamer(frames, parameter.CandleDelay, rate, parameter.DefaultSeed)

	perTick := rate.N(parameter.CandleDelay)
	if ts.Len() != perTick*len(frames) {
		t.Fatalf("expected %d samples, got %d", perTick*len(frames), ts.Len())
	}

	total := 0
	buf := make([][2]float64, 500)
	for {
		n, ok := ts.Stream(buf)
		total += n
		if !ok {
			break
		}
		if total > ts.Len() {
			t.Fatalf("streamed past the end: %d", total)
		}
	}
	if total != ts.Len() {
		t.Errorf("expected %d streamed samples, got %d", ts.Len(), total)
	}
}

func TestWriteWAV(t *testing.T) {
	frames := make([]pwm.Frame, 40)
	for i := range frames {
		frames[i] = pwm.Frame{uint8(55 + i*5), uint8(255 - i*5)}
	}

	path := filepath.Join(t.TempDir(), "flame.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := WriteWAV(f, frames, 10*time.Millisecond, parameter.DefaultSeed); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	f.Close()

	in, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer in.Close()

	stream, format, err := wav.Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	defer stream.Close()

	if format.SampleRate != beep.SampleRate(parameter.AudioSampleRate) || format.NumChannels != 2 || format.Precision != 2 {
		t.Errorf("unexpected format %+v", format)
	}
	want := len(frames) * format.SampleRate.N(10*time.Millisecond)
	if stream.Len() != want {
		t.Errorf("expected %d samples, got %d", want, stream.Len())
	}
}

func TestWriteWAVEmpty(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "empty.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := WriteWAV(f, nil, parameter.CandleDelay, parameter.DefaultSeed); err != ErrEmptyTrace {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
}
