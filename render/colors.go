package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tinycandle/pwm"
)

// LED off to full duty is blended in Lab space between these two
var (
	// ColorLEDOff is dark amber glass
	ColorLEDOff = colorful.Color{R: 0.06, G: 0.03, B: 0.02}
	// ColorLEDFull is a ~1900K candle white
	ColorLEDFull = colorful.Color{R: 1.0, G: 0.576, B: 0.161}
)

var (
	RgbBackground = tcell.NewRGBColor(12, 10, 14)    // Near-black room
	RgbStatusText = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbSleepText  = tcell.NewRGBColor(100, 120, 200) // Muted blue
	RgbGustText   = tcell.NewRGBColor(255, 200, 120) // Warm highlight
	RgbWick       = tcell.NewRGBColor(60, 50, 40)    // Charred wick
	RgbWax        = tcell.NewRGBColor(230, 220, 200) // Tealight wax
)

// DutyColor maps a duty cycle to the apparent LED colour
func DutyColor(duty uint8) tcell.Color {
	t := float64(duty) / pwm.MaxDuty
	c := ColorLEDOff.BlendLab(ColorLEDFull, t).Clamped()
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
