package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tinycandle/candle"
	"github.com/lixenwraith/tinycandle/parameter"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellBackground(s tcell.SimulationScreen, x, y int) tcell.Color {
	cells, w, _ := s.GetContents()
	_, bg, _ := cells[y*w+x].Style.Decompose()
	return bg
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(runes[0])
	}
	return sb.String()
}

func brightness(c tcell.Color) int32 {
	r, g, b := c.RGB()
	return r + g + b
}

func TestDutyColorMonotonic(t *testing.T) {
	prev := brightness(DutyColor(0))
	for _, d := range []uint8{55, 128, 155, 200, 255} {
		cur := brightness(DutyColor(d))
		if cur <= prev {
			t.Errorf("duty %d should be brighter than the previous step (%d <= %d)", d, cur, prev)
		}
		prev = cur
	}

	r, g, b := DutyColor(255).RGB()
	if r != 255 || g < 140 || g > 150 || b > 45 {
		t.Errorf("full duty should be candle orange, got %d,%d,%d", r, g, b)
	}
}

func TestViewDrawsBothPairs(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	v := NewView(s)

	v.SetDuty(255, 55)
	v.Draw(Status{Interval: parameter.CandleDelay})

	left, _, ledTop := Layout(80, 24)
	if got := cellBackground(s, left, ledTop); got != DutyColor(255) {
		t.Errorf("LED A should show duty 255, got %v", got)
	}
	if got := cellBackground(s, left+LEDWidth+LEDGap, ledTop+LEDHeight-1); got != DutyColor(55) {
		t.Errorf("LED B should show duty 55, got %v", got)
	}
	if !strings.Contains(rowText(s, ledTop+LEDHeight), "A 255") {
		t.Errorf("missing channel A label in %q", rowText(s, ledTop+LEDHeight))
	}
	if !strings.Contains(rowText(s, ledTop+LEDHeight), "B  55") {
		t.Errorf("missing channel B label in %q", rowText(s, ledTop+LEDHeight))
	}
}

func TestViewDisabledShowsSleep(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	v := NewView(s)

	v.SetDuty(200, 200)
	v.Disable()
	if _, _, on := v.Duty(); on {
		t.Fatal("view should report LEDs off after Disable")
	}

	v.Draw(Status{Asleep: true, Interval: parameter.CandleDelay})

	left, _, ledTop := Layout(80, 24)
	if got := cellBackground(s, left, ledTop); got != DutyColor(0) {
		t.Errorf("sleeping LED A should be dark, got %v", got)
	}
	if !strings.Contains(rowText(s, 0), "SLEEP") {
		t.Errorf("expected SLEEP marker, got %q", rowText(s, 0))
	}
}

func TestViewStatusLine(t *testing.T) {
	s := newSimScreen(t, 100, 24)
	v := NewView(s)

	st := candle.State{Ticks: 42, Uncalm: 61420, Gusts: 1, UncalmDir: -parameter.UncalmInc}
	v.SetDuty(155, 155)
	v.Draw(Status{State: st, MaxUncalm: parameter.MaxUncalm, Interval: parameter.CandleDelay})

	status := rowText(s, 23)
	for _, want := range []string{"tick 42", "uncalm 61420", "gusts 1", "25ms/tick"} {
		if !strings.Contains(status, want) {
			t.Errorf("status line %q missing %q", status, want)
		}
	}
	if !strings.Contains(rowText(s, 0), "GUST") {
		t.Errorf("expected GUST marker above MaxUncalm, got %q", rowText(s, 0))
	}
}

func TestViewTooSmall(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	v := NewView(s)
	v.SetDuty(155, 155)
	v.Draw(Status{})

	if !strings.HasPrefix(rowText(s, 0), "terminal t") {
		t.Errorf("expected size warning, got %q", rowText(s, 0))
	}
}
