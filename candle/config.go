package candle

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tinycandle/parameter"
	"github.com/lixenwraith/tinycandle/vmath"
)

// ErrInvalidConfig is wrapped by Config.Validate for every rejected field
var ErrInvalidConfig = errors.New("invalid candle config")

// Config holds the tunables of one flame simulation
type Config struct {
	// MaxDev bounds the flame displacement on each axis
	MaxDev int16

	// Wind ramp: uncalm oscillates in [MinUncalm, MaxUncalm] by UncalmInc per tick
	MinUncalm uint16
	MaxUncalm uint16
	UncalmInc int16

	// Bias is added to the displacement to form the duty cycle
	Bias int16

	// Gusts enables rare jumps of uncalm to GustUncalmFactor*MaxUncalm
	Gusts bool

	// Scaling and Seed configure the LFSR feeding the simulation
	Scaling vmath.Scaling
	Seed    uint16
}

// DefaultConfig is modulo scaling with gusts enabled
func DefaultConfig() Config {
	return Config{
		MaxDev:    parameter.MaxDev,
		MinUncalm: parameter.MinUncalm,
		MaxUncalm: parameter.MaxUncalm,
		UncalmInc: parameter.UncalmInc,
		Bias:      parameter.DutyBias,
		Gusts:     true,
		Scaling:   vmath.ScaleModulo,
		Seed:      parameter.DefaultSeed,
	}
}

// FirmwareConfig reproduces the shipped tealight firmware: multiply-shift scaling, no gusts
func FirmwareConfig() Config {
	cfg := DefaultConfig()
	cfg.Gusts = false
	cfg.Scaling = vmath.ScaleMulShift
	return cfg
}

// Validate checks every arithmetic step of Tick stays inside its integer width for this config
func (c Config) Validate() error {
	switch {
	case c.MaxDev <= 0 || c.MaxDev > 127:
		return fmt.Errorf("max deviation %d outside (0, 127]: %w", c.MaxDev, ErrInvalidConfig)
	case c.UncalmInc <= 0:
		return fmt.Errorf("uncalm increment %d must be positive: %w", c.UncalmInc, ErrInvalidConfig)
	case c.MinUncalm == 0 || c.MinUncalm%256 != 0:
		return fmt.Errorf("min uncalm %d must be a positive multiple of 256: %w", c.MinUncalm, ErrInvalidConfig)
	case int32(c.MinUncalm)-int32(c.UncalmInc) < 256:
		return fmt.Errorf("min uncalm %d minus increment %d drops below 256: %w", c.MinUncalm, c.UncalmInc, ErrInvalidConfig)
	case c.MaxUncalm <= c.MinUncalm:
		return fmt.Errorf("max uncalm %d must exceed min uncalm %d: %w", c.MaxUncalm, c.MinUncalm, ErrInvalidConfig)
	case uint32(c.MaxUncalm)*parameter.GustUncalmFactor+uint32(c.UncalmInc) > 0xFFFF:
		return fmt.Errorf("gust uncalm %d*%d+%d overflows 16 bits: %w", c.MaxUncalm, parameter.GustUncalmFactor, c.UncalmInc, ErrInvalidConfig)
	case int32(c.Bias)-int32(c.MaxDev) < 0 || int32(c.Bias)+int32(c.MaxDev) > 255:
		return fmt.Errorf("bias %d with max deviation %d leaves the 8-bit duty range: %w", c.Bias, c.MaxDev, ErrInvalidConfig)
	case c.Scaling != vmath.ScaleModulo && c.Scaling != vmath.ScaleMulShift:
		return fmt.Errorf("unknown scaling %d: %w", c.Scaling, ErrInvalidConfig)
	case c.Seed == 0:
		return fmt.Errorf("seed must be nonzero: %w", ErrInvalidConfig)
	}
	return nil
}

// NewSource returns a fresh LFSR seeded and scaled per the config
func (c Config) NewSource() *vmath.LFSR {
	return vmath.NewLFSR(c.Seed, c.Scaling)
}

// DutyRange returns the inclusive bounds every Tick output falls in
func (c Config) DutyRange() (lo, hi uint8) {
	return uint8(c.Bias - c.MaxDev), uint8(c.Bias + c.MaxDev)
}
