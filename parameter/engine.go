package parameter

import "time"

// Control loop timing
const (
	// CandleDelay is the tick period of the flame simulation
	CandleDelay = 25 * time.Millisecond

	// CandleDelayMin and CandleDelayMax bound the configurable tick period
	CandleDelayMin = 5 * time.Millisecond
	CandleDelayMax = 250 * time.Millisecond

	// ButtonDebounce ignores repeated presses inside this window
	ButtonDebounce = 10 * time.Millisecond

	// MaxBehindTicks is how many periods the scheduler may lag before it drops the backlog
	MaxBehindTicks = 2

	// ControlQueueSize is the capacity of the scheduler's button/control channel
	ControlQueueSize = 8
)

// Offline rendering defaults
const (
	// DefaultTraceTicks is the tick count for trace, wav and plot commands (25 s at CandleDelay)
	DefaultTraceTicks = 1000
)
