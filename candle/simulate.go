package candle

import "github.com/lixenwraith/tinycandle/pwm"

// Simulate runs n ticks from the power-on state of cfg with its own LFSR
func Simulate(cfg Config, n int) ([]pwm.Frame, error) {
	f, err := New(cfg)
	if err != nil {
		return nil, err
	}
	src := cfg.NewSource()
	frames := make([]pwm.Frame, n)
	for i := range frames {
		a, b := f.Tick(src)
		frames[i] = pwm.Frame{a, b}
	}
	return frames, nil
}

// Drive runs n ticks of f against src, pushing every frame into out
func Drive(f *Flame, src Source, out pwm.Output, n int) {
	for i := 0; i < n; i++ {
		out.SetDuty(f.Tick(src))
	}
}
