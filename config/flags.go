package config

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tinycandle/vmath"
)

// Flags holds the common command-line options of every subcommand
type Flags struct {
	fs *flag.FlagSet

	configPath string
	firmware   bool
	seed       uint
	scaling    string
	gusts      bool
	bias       int
	delay      time.Duration
	sound      bool
	logLevel   string
	logFile    string
}

// RegisterFlags defines the common options on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.configPath, "config", "", "TOML config `file`")
	fs.BoolVar(&f.firmware, "firmware", false, "use the firmware preset: mulshift scaling, no gusts")
	fs.UintVar(&f.seed, "seed", uint(d.Candle.Seed), "LFSR seed, nonzero 16-bit")
	fs.StringVar(&f.scaling, "scaling", d.Candle.Scaling.String(), "random scaling: modulo, mulshift")
	fs.BoolVar(&f.gusts, "gusts", d.Candle.Gusts, "enable random wind gusts")
	fs.IntVar(&f.bias, "bias", int(d.Candle.Bias), "duty at rest")
	fs.DurationVar(&f.delay, "delay", d.Delay, "tick period")
	fs.BoolVar(&f.sound, "sound", d.Sound, "play the flame through the speaker")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel.String(), "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "write JSON logs to `file`")
	return f
}

// Resolve layers defaults, the config file, the -firmware preset and explicitly set flags, then validates
func (f *Flags) Resolve() (Settings, error) {
	s := Default()
	if f.configPath != "" {
		loaded, err := Load(f.configPath)
		if err != nil {
			return s, err
		}
		s = loaded
	}
	if f.firmware {
		seed := s.Candle.Seed
		s.Candle, _ = Preset(PresetFirmware)
		s.Candle.Seed = seed
	}

	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		err = f.apply(&s, fl.Name)
	})
	if err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (f *Flags) apply(s *Settings, name string) error {
	switch name {
	case "seed":
		if f.seed == 0 || f.seed > math.MaxUint16 {
			return fmt.Errorf("seed %d outside [1, %d]: %w", f.seed, math.MaxUint16, ErrInvalidValue)
		}
		s.Candle.Seed = uint16(f.seed)
	case "scaling":
		scaling, ok := vmath.ParseScaling(f.scaling)
		if !ok {
			return fmt.Errorf("scaling %q: %w", f.scaling, ErrInvalidValue)
		}
		s.Candle.Scaling = scaling
	case "gusts":
		s.Candle.Gusts = f.gusts
	case "bias":
		if f.bias < 0 || f.bias > math.MaxUint8 {
			return fmt.Errorf("bias %d outside [0, 255]: %w", f.bias, ErrInvalidValue)
		}
		s.Candle.Bias = int16(f.bias)
	case "delay":
		s.Delay = f.delay
	case "sound":
		s.Sound = f.sound
	case "log-level":
		level, err := zerolog.ParseLevel(f.logLevel)
		if err != nil {
			return fmt.Errorf("log level %q: %w", f.logLevel, ErrInvalidValue)
		}
		s.LogLevel = level
	case "log-file":
		s.LogFile = f.logFile
	}
	return nil
}
