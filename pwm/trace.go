package pwm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Trace text format: one tick per line, "<a> <b>\n" in decimal
// Lines starting with '#' are comments; TraceWriter marks sleep periods with them

// ErrMalformedTrace is wrapped by ReadTrace for any unparsable line
var ErrMalformedTrace = errors.New("malformed trace")

// TraceWriter is an Output that streams frames in trace text format
type TraceWriter struct {
	mu  sync.Mutex
	w   *bufio.Writer
	err error
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: bufio.NewWriter(w)}
}

func (t *TraceWriter) SetDuty(a, b uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	buf := make([]byte, 0, 8)
	buf = strconv.AppendUint(buf, uint64(a), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	buf = append(buf, '\n')
	_, t.err = t.w.Write(buf)
}

func (t *TraceWriter) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	_, t.err = t.w.WriteString("# off\n")
	if t.err == nil {
		t.err = t.w.Flush()
	}
}

// Flush writes buffered lines and returns the first error seen since construction
func (t *TraceWriter) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.err = t.w.Flush()
	return t.err
}

// WriteTrace writes frames in trace text format
func WriteTrace(w io.Writer, frames []Frame) error {
	tw := NewTraceWriter(w)
	for _, f := range frames {
		tw.SetDuty(f[ChannelA], f[ChannelB])
	}
	return tw.Flush()
}

// ReadTrace parses trace text, skipping blank and comment lines
func ReadTrace(r io.Reader) ([]Frame, error) {
	var frames []Frame
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != int(ChannelCount) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d: %w", line, ChannelCount, len(fields), ErrMalformedTrace)
		}
		var f Frame
		for i, field := range fields {
			v, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrMalformedTrace)
			}
			f[i] = uint8(v)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return frames, nil
}
