package vmath

// LFSRMask is the Galois tap mask for x^16 + x^14 + x^13 + x^11 + 1, a maximal-length polynomial
const LFSRMask uint16 = 0xB400

// LFSRPeriod is the cycle length of the register under LFSRMask, every nonzero state is visited once
const LFSRPeriod = 1<<16 - 1

// DefaultLFSRSeed replaces a zero seed, zero is the absorbing state of the register
const DefaultLFSRSeed uint16 = 0xACE1

// Scaling selects how a raw 16-bit register value is reduced into [0, bound)
type Scaling uint8

const (
	// ScaleModulo returns state % bound
	ScaleModulo Scaling = iota
	// ScaleMulShift returns (bound * state) >> 16, treating state as a Q0.16 fraction
	ScaleMulShift
)

func (s Scaling) String() string {
	switch s {
	case ScaleModulo:
		return "modulo"
	case ScaleMulShift:
		return "mulshift"
	default:
		return "unknown"
	}
}

// ParseScaling maps a scaling name back to its value
func ParseScaling(name string) (Scaling, bool) {
	switch name {
	case "modulo", "mod":
		return ScaleModulo, true
	case "mulshift", "mul":
		return ScaleMulShift, true
	}
	return 0, false
}

// LFSR is a 16-bit Galois linear feedback shift register
// The scaling policy is fixed at construction so one generator never mixes output distributions
type LFSR struct {
	state   uint16
	seed    uint16
	scaling Scaling
}

func NewLFSR(seed uint16, scaling Scaling) *LFSR {
	if seed == 0 {
		seed = DefaultLFSRSeed
	}
	return &LFSR{state: seed, seed: seed, scaling: scaling}
}

// Step advances the register one position and returns the new state
func (r *LFSR) Step() uint16 {
	lsb := r.state & 1
	r.state >>= 1
	if lsb != 0 {
		r.state ^= LFSRMask
	}
	return r.state
}

// Next advances the register and returns a value in [0, bound)
// bound must be positive; zero yields 0 without advancing
func (r *LFSR) Next(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	s := uint32(r.Step())
	if r.scaling == ScaleMulShift {
		return uint32((uint64(bound) * uint64(s)) >> 16)
	}
	return s % bound
}

func (r *LFSR) State() uint16    { return r.state }
func (r *LFSR) Seed() uint16     { return r.seed }
func (r *LFSR) Scaling() Scaling { return r.scaling }
func (r *LFSR) Reset()           { r.state = r.seed }
