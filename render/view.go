// Package render draws the two LED pairs of the candle on a tcell screen
package render

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/parameter"
)

// Layout constants in cells
const (
	LEDWidth  = 10
	LEDHeight = 4
	LEDGap    = 6
	FlameRows = 5
	MinWidth  = 2*LEDWidth + LEDGap + 4
	MinHeight = LEDHeight + FlameRows + 6
)

// Status is the non-output information shown under the LEDs
type Status struct {
	State     candle.State
	MaxUncalm uint16
	Asleep    bool
	Interval  time.Duration
}

// View is a pwm.Output that keeps the latest duties for the render loop
// SetDuty/Disable are called from the scheduler goroutine, Draw from the render goroutine
type View struct {
	screen tcell.Screen

	// duty packs channel A in bits 8-15 and channel B in bits 0-7
	duty    atomic.Uint32
	enabled atomic.Bool
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

func (v *View) SetDuty(a, b uint8) {
	v.duty.Store(uint32(a)<<8 | uint32(b))
	v.enabled.Store(true)
}

func (v *View) Disable() {
	v.enabled.Store(false)
}

// Duty returns the last duties and whether the LEDs are lit
func (v *View) Duty() (a, b uint8, on bool) {
	d := v.duty.Load()
	return uint8(d >> 8), uint8(d), v.enabled.Load()
}

// Draw renders one frame and shows it
func (v *View) Draw(st Status) {
	s := v.screen
	bg := tcell.StyleDefault.Background(RgbBackground)
	s.SetStyle(bg)
	s.Clear()

	w, h := s.Size()
	if w < MinWidth || h < MinHeight {
		drawText(s, 0, 0, bg.Foreground(RgbStatusText), "terminal too small")
		s.Show()
		return
	}

	a, b, on := v.Duty()
	if !on {
		a, b = 0, 0
	}

	left, top, ledTop := Layout(w, h)

	// Flame leans toward the brighter pair, the balance point is what the eye tracks
	lean := (int(a) - int(b)) / parameter.FlameLeanDiv
	mid := left + LEDWidth + LEDGap/2
	if on {
		v.drawFlame(mid-lean, top+1, a, b)
	}
	drawText(s, mid-1, top+FlameRows+1, bg.Foreground(RgbWick), "|")
	drawText(s, mid-4, top+FlameRows+2, bg.Foreground(RgbWax), "\\______/")
	fillRect(s, left, ledTop, LEDWidth, LEDHeight, tcell.StyleDefault.Background(DutyColor(a)))
	fillRect(s, left+LEDWidth+LEDGap, ledTop, LEDWidth, LEDHeight, tcell.StyleDefault.Background(DutyColor(b)))

	labelStyle := bg.Foreground(RgbStatusText)
	drawText(s, left, ledTop+LEDHeight, labelStyle, fmt.Sprintf("A %3d", a))
	drawText(s, left+LEDWidth+LEDGap, ledTop+LEDHeight, labelStyle, fmt.Sprintf("B %3d", b))

	v.drawStatus(st, h-1, w)
	s.Show()
}

// Layout returns the left edge of LED A, the top of the flame and the top of the LEDs
func Layout(w, h int) (left, top, ledTop int) {
	left = (w - (2*LEDWidth + LEDGap)) / 2
	top = (h - MinHeight) / 2
	ledTop = top + FlameRows + 3
	return left, top, ledTop
}

// drawFlame draws a tapered flame whose colour follows the mean duty
func (v *View) drawFlame(cx, top int, a, b uint8) {
	mean := uint8((int(a) + int(b)) / 2)
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(DutyColor(mean))
	for row := 0; row < FlameRows; row++ {
		half := row / 2
		for x := cx - half; x <= cx+half; x++ {
			v.screen.SetContent(x, top+row, '█', nil, style)
		}
	}
}

func (v *View) drawStatus(st Status, y, w int) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	line := fmt.Sprintf(" tick %d  uncalm %5d  gusts %d  %v/tick  [space] button  [q] quit",
		st.State.Ticks, st.State.Uncalm, st.State.Gusts, st.Interval)
	drawText(v.screen, 0, y, bg.Foreground(RgbStatusText), truncate(line, w))

	switch {
	case st.Asleep:
		drawText(v.screen, 0, 0, bg.Foreground(RgbSleepText).Bold(true), parameter.SleepText)
	case st.MaxUncalm > 0 && st.State.Uncalm > st.MaxUncalm:
		drawText(v.screen, 0, 0, bg.Foreground(RgbGustText), parameter.GustText)
	}
}

func fillRect(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(text string, w int) string {
	r := []rune(text)
	if len(r) > w {
		return string(r[:w])
	}
	return text
}
