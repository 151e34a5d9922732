package parameter

import "time"

// Terminal view timing
const (
	// FrameInterval is the redraw period of the terminal view, independent of CandleDelay
	FrameInterval = 16 * time.Millisecond

	// TraceFlushInterval bounds how long headless trace lines sit in the output buffer
	TraceFlushInterval = 100 * time.Millisecond
)

// Status markers, drawn in the top-left corner
const (
	SleepText = " SLEEP"
	GustText  = " GUST"
)

// FlameLeanDiv converts the A-B duty difference into flame lean in cells
const FlameLeanDiv = 32
