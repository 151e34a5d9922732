// Package config assembles run settings from compiled-in defaults, an optional TOML file and command-line flags
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/vmath"
)

var (
	ErrUnknownKey    = errors.New("unknown config key")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidValue  = errors.New("invalid config value")
)

// Preset names accepted by the file and flags
const (
	PresetDefault  = "default"
	PresetFirmware = "firmware"
)

// Settings is everything a command needs to run a flame
type Settings struct {
	Candle   candle.Config
	Delay    time.Duration
	Sound    bool
	LogLevel zerolog.Level
	// LogFile receives JSON logs when set, otherwise logs go to the console writer
	LogFile string
}

func Default() Settings {
	return Settings{
		Candle:   candle.DefaultConfig(),
		Delay:    parameter.CandleDelay,
		LogLevel: zerolog.InfoLevel,
	}
}

// Preset returns the named candle configuration
func Preset(name string) (candle.Config, error) {
	switch strings.ToLower(name) {
	case PresetDefault, "":
		return candle.DefaultConfig(), nil
	case PresetFirmware:
		return candle.FirmwareConfig(), nil
	}
	return candle.Config{}, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
}

// Validate checks the candle config and the tick period
func (s Settings) Validate() error {
	if err := s.Candle.Validate(); err != nil {
		return err
	}
	if s.Delay < parameter.CandleDelayMin || s.Delay > parameter.CandleDelayMax {
		return fmt.Errorf("delay %v outside [%v, %v]: %w",
			s.Delay, parameter.CandleDelayMin, parameter.CandleDelayMax, ErrInvalidValue)
	}
	return nil
}

// fileConfig mirrors the TOML layout, pointers distinguish absent keys from zero values
type fileConfig struct {
	Candle struct {
		Preset    *string `toml:"preset"`
		MaxDev    *int16  `toml:"max_dev"`
		MinUncalm *uint16 `toml:"min_uncalm"`
		MaxUncalm *uint16 `toml:"max_uncalm"`
		UncalmInc *int16  `toml:"uncalm_inc"`
		Bias      *int16  `toml:"bias"`
		Gusts     *bool   `toml:"gusts"`
		Scaling   *string `toml:"scaling"`
		Seed      *uint16 `toml:"seed"`
	} `toml:"candle"`

	Run struct {
		// Delay is a duration string such as "25ms"
		Delay    *time.Duration `toml:"delay"`
		Sound    *bool          `toml:"sound"`
		LogLevel *string        `toml:"log_level"`
		LogFile  *string        `toml:"log_file"`
	} `toml:"run"`
}

// Load reads a TOML file over the defaults
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := s.Merge(string(data)); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Merge applies a TOML document to s
// A preset replaces the whole candle table first, then individual keys override it
func (s *Settings) Merge(doc string) error {
	var fc fileConfig
	md, err := toml.Decode(doc, &fc)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: %w", strings.Join(keys, ", "), ErrUnknownKey)
	}

	c := fc.Candle
	if c.Preset != nil {
		preset, err := Preset(*c.Preset)
		if err != nil {
			return err
		}
		s.Candle = preset
	}
	setIf(&s.Candle.MaxDev, c.MaxDev)
	setIf(&s.Candle.MinUncalm, c.MinUncalm)
	setIf(&s.Candle.MaxUncalm, c.MaxUncalm)
	setIf(&s.Candle.UncalmInc, c.UncalmInc)
	setIf(&s.Candle.Bias, c.Bias)
	setIf(&s.Candle.Gusts, c.Gusts)
	setIf(&s.Candle.Seed, c.Seed)
	if c.Scaling != nil {
		scaling, ok := vmath.ParseScaling(*c.Scaling)
		if !ok {
			return fmt.Errorf("scaling %q: %w", *c.Scaling, ErrInvalidValue)
		}
		s.Candle.Scaling = scaling
	}

	r := fc.Run
	setIf(&s.Delay, r.Delay)
	setIf(&s.Sound, r.Sound)
	setIf(&s.LogFile, r.LogFile)
	if r.LogLevel != nil {
		level, err := zerolog.ParseLevel(*r.LogLevel)
		if err != nil {
			return fmt.Errorf("log level %q: %w", *r.LogLevel, ErrInvalidValue)
		}
		s.LogLevel = level
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
