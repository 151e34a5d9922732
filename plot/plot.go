// Package plot renders a duty trace as a PNG line chart
package plot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/tinycandle/pwm"
)

// ErrNoFrames is returned for an empty trace
var ErrNoFrames = errors.New("no frames to plot")

const (
	DefaultWidth  = 1200
	DefaultHeight = 400

	margin = 40
)

// Options controls chart geometry and annotation
// Zero fields take defaults
type Options struct {
	Width, Height int
	Interval      time.Duration
	Title         string
	// Bias draws a reference line at the resting duty, 0 to omit
	Bias uint8
	// Lo/Hi draw the reachable duty band, equal values to omit
	Lo, Hi uint8
}

var (
	background = colorful.Color{R: 0.06, G: 0.05, B: 0.05}
	gridColor  = colorful.Color{R: 0.25, G: 0.22, B: 0.2}
	textColor  = colorful.Color{R: 0.85, G: 0.82, B: 0.78}
	channelA   = colorful.Color{R: 1.0, G: 0.62, B: 0.16}
	channelB   = colorful.Color{R: 1.0, G: 0.86, B: 0.45}
)

func (o Options) withDefaults() Options {
	if o.Width <= 2*margin {
		o.Width = DefaultWidth
	}
	if o.Height <= 2*margin {
		o.Height = DefaultHeight
	}
	return o
}

// dutyY maps a duty to a pixel row, 0 at the bottom margin and 255 at the top
func dutyY(d uint8, height int) float64 {
	span := float64(height - 2*margin)
	return float64(height-margin) - float64(d)*span/pwm.MaxDuty
}

// tickX maps a frame index to a pixel column
func tickX(i, n, width int) float64 {
	if n < 2 {
		return margin
	}
	return margin + float64(i)*float64(width-2*margin)/float64(n-1)
}

func setColor(dc *gg.Context, c colorful.Color) {
	dc.SetRGB(c.R, c.G, c.B)
}

// Render draws both channels of frames into an image
func Render(frames []pwm.Frame, opts Options) (image.Image, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	o := opts.withDefaults()
	dc := gg.NewContext(o.Width, o.Height)

	setColor(dc, background)
	dc.Clear()

	// Duty grid every 64 steps
	setColor(dc, gridColor)
	dc.SetLineWidth(1)
	for d := 0; d <= pwm.MaxDuty; d += 64 {
		y := dutyY(uint8(d), o.Height)
		dc.DrawLine(margin, y, float64(o.Width-margin), y)
		dc.Stroke()
	}

	if o.Hi > o.Lo {
		dc.SetDash(4, 4)
		for _, d := range []uint8{o.Lo, o.Hi} {
			y := dutyY(d, o.Height)
			dc.DrawLine(margin, y, float64(o.Width-margin), y)
			dc.Stroke()
		}
		dc.SetDash()
	}
	if o.Bias > 0 {
		setColor(dc, textColor)
		y := dutyY(o.Bias, o.Height)
		dc.DrawLine(margin, y, float64(o.Width-margin), y)
		dc.Stroke()
	}

	n := len(frames)
	dc.SetLineWidth(1.5)
	for ch, c := range []colorful.Color{channelA, channelB} {
		setColor(dc, c)
		for i, f := range frames {
			x, y := tickX(i, n, o.Width), dutyY(f[ch], o.Height)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if n == 1 {
			dc.LineTo(float64(o.Width-margin), dutyY(frames[0][ch], o.Height))
		}
		dc.Stroke()
	}

	setColor(dc, textColor)
	if o.Title != "" {
		dc.DrawStringAnchored(o.Title, float64(o.Width)/2, margin/2, 0.5, 0.5)
	}
	span := fmt.Sprintf("%d ticks", n)
	if o.Interval > 0 {
		span = fmt.Sprintf("%d ticks, %v", n, time.Duration(n)*o.Interval)
	}
	dc.DrawStringAnchored(span, float64(o.Width-margin), float64(o.Height)-margin/2, 1, 0.5)
	dc.DrawStringAnchored("255", margin-4, dutyY(255, o.Height), 1, 0.5)
	dc.DrawStringAnchored("0", margin-4, dutyY(0, o.Height), 1, 0.5)

	return dc.Image(), nil
}

// WritePNG renders frames and encodes the chart as PNG
func WritePNG(w io.Writer, frames []pwm.Frame, opts Options) error {
	img, err := Render(frames, opts)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
