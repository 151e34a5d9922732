package parameter

// Flame simulation tuning, values match the shipped tealight firmware
const (
	// MaxDev is the maximum flame displacement from center on each axis
	MaxDev = 100

	// MinUncalm is the calm floor of wind intensity, a multiple of 256 so uncalm>>8 never reaches zero
	MinUncalm = 20 * 256

	// MaxUncalm is the windy ceiling of the triangular wind ramp
	MaxUncalm = 120 * 256

	// UncalmInc is the per-tick wind ramp step
	UncalmInc = 20

	// DutyBias is the PWM midpoint, 155 keeps the dimmest duty at 55
	DutyBias = 155

	// DutyBiasCentered places the midpoint at half scale
	DutyBiasCentered = 128
)

// Gust injection
const (
	// GustRange is the PRNG bound of the gust roll
	GustRange = 2000

	// GustOdds is the number of winning values in GustRange (0.25% per eligible tick)
	GustOdds = 5

	// GustUncalmFactor scales MaxUncalm to get the uncalm value set by a gust
	GustUncalmFactor = 2
)

// Velocity damping, velocity*DampingNum/DampingDen on ticks where tickCount&DampingMask == 0
const (
	DampingMask = 3
	DampingNum  = 999
	DampingDen  = 1000
)

// Seeds
const (
	// DefaultSeed is the LFSR power-on value
	DefaultSeed uint16 = 0xACE1
)
