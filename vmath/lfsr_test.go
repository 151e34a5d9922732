package vmath

import (
	"math/rand/v2"
	"testing"
)

// TestLFSRStepSequence pins the first register states after the default seed
func TestLFSRStepSequence(t *testing.T) {
	r := NewLFSR(DefaultLFSRSeed, ScaleModulo)
	expected := []uint16{0xE270, 0x7138, 0x389C, 0x1C4E}
	for i, want := range expected {
		if got := r.Step(); got != want {
			t.Fatalf("step %d: expected 0x%04X, got 0x%04X", i, want, got)
		}
	}
}

// TestLFSRScalingSequences verifies both scaling policies from the same seed
func TestLFSRScalingSequences(t *testing.T) {
	tests := []struct {
		name     string
		scaling  Scaling
		expected []uint32
	}{
		{"modulo", ScaleModulo, []uint32{968, 984, 492, 246, 623, 843, 809, 860}},
		{"mulshift", ScaleMulShift, []uint32{884, 442, 221, 110, 55, 699, 927, 760}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLFSR(DefaultLFSRSeed, tt.scaling)
			for i, want := range tt.expected {
				if got := r.Next(1000); got != want {
					t.Fatalf("draw %d: expected %d, got %d", i, want, got)
				}
			}
		})
	}
}

// TestLFSRPeriod walks the full cycle: no zero state, back to seed after exactly LFSRPeriod steps
func TestLFSRPeriod(t *testing.T) {
	seeds := []uint16{DefaultLFSRSeed, 1, 0x8000, 0xFFFF, 0x1234}
	for _, seed := range seeds {
		r := NewLFSR(seed, ScaleModulo)
		period := 0
		for {
			s := r.Step()
			period++
			if s == 0 {
				t.Fatalf("seed 0x%04X: register reached zero after %d steps", seed, period)
			}
			if s == seed {
				break
			}
			if period > LFSRPeriod {
				t.Fatalf("seed 0x%04X: no return to seed within %d steps", seed, LFSRPeriod)
			}
		}
		if period != LFSRPeriod {
			t.Errorf("seed 0x%04X: expected period %d, got %d", seed, LFSRPeriod, period)
		}
	}
}

// TestLFSRVisitsEveryNonzeroState checks the mask is maximal length
func TestLFSRVisitsEveryNonzeroState(t *testing.T) {
	var seen [1 << 16]bool
	r := NewLFSR(DefaultLFSRSeed, ScaleModulo)
	for i := 0; i < LFSRPeriod; i++ {
		seen[r.Step()] = true
	}
	if seen[0] {
		t.Fatal("zero state visited")
	}
	for s := 1; s < len(seen); s++ {
		if !seen[s] {
			t.Fatalf("state 0x%04X never visited", s)
		}
	}
}

// TestLFSRNextBounds checks every draw lands in [0, bound) across the bound range
func TestLFSRNextBounds(t *testing.T) {
	for _, scaling := range []Scaling{ScaleModulo, ScaleMulShift} {
		r := NewLFSR(0x5A5A, scaling)
		for bound := uint32(1); bound < 1<<16; bound += 7 {
			for i := 0; i < 4; i++ {
				if v := r.Next(bound); v >= bound {
					t.Fatalf("%s: Next(%d) returned %d", scaling, bound, v)
				}
			}
		}
		if v := r.Next(1); v != 0 {
			t.Errorf("%s: Next(1) should be 0, got %d", scaling, v)
		}
		if v := r.Next(65535); v >= 65535 {
			t.Errorf("%s: Next(65535) returned %d", scaling, v)
		}
	}
}

func TestLFSRZeroBound(t *testing.T) {
	r := NewLFSR(DefaultLFSRSeed, ScaleModulo)
	if v := r.Next(0); v != 0 {
		t.Errorf("expected 0 for zero bound, got %d", v)
	}
	if r.State() != DefaultLFSRSeed {
		t.Errorf("zero bound must not advance the register, state 0x%04X", r.State())
	}
}

func TestLFSRZeroSeedReplaced(t *testing.T) {
	r := NewLFSR(0, ScaleMulShift)
	if r.Seed() != DefaultLFSRSeed || r.State() != DefaultLFSRSeed {
		t.Errorf("zero seed should be replaced by 0x%04X, got seed 0x%04X state 0x%04X",
			DefaultLFSRSeed, r.Seed(), r.State())
	}
}

func TestLFSRReset(t *testing.T) {
	r := NewLFSR(0xBEEF, ScaleModulo)
	first := make([]uint32, 16)
	for i := range first {
		first[i] = r.Next(500)
	}
	r.Reset()
	for i, want := range first {
		if got := r.Next(500); got != want {
			t.Fatalf("draw %d after reset: expected %d, got %d", i, want, got)
		}
	}
}

func TestParseScaling(t *testing.T) {
	for _, s := range []Scaling{ScaleModulo, ScaleMulShift} {
		got, ok := ParseScaling(s.String())
		if !ok || got != s {
			t.Errorf("round trip of %q failed: %v %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseScaling("bogus"); ok {
		t.Error("unknown name should not parse")
	}
}

func TestMulDivTrunc(t *testing.T) {
	tests := []struct {
		a, num, den, want int32
	}{
		{1000, 999, 1000, 999},
		{-1000, 999, 1000, -999},
		{1, 999, 1000, 0},
		{-1, 999, 1000, 0},
		{-669, 999, 1000, -668},
		{40000, 999, 1000, 39960},
		{5, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := MulDivTrunc(tt.a, tt.num, tt.den); got != tt.want {
			t.Errorf("MulDivTrunc(%d, %d, %d) = %d, want %d", tt.a, tt.num, tt.den, got, tt.want)
		}
	}
}

var sink uint32

func BenchmarkLFSRNext(b *testing.B) {
	for _, scaling := range []Scaling{ScaleModulo, ScaleMulShift} {
		b.Run(scaling.String(), func(b *testing.B) {
			r := NewLFSR(DefaultLFSRSeed, scaling)
			for i := 0; i < b.N; i++ {
				sink += r.Next(2000)
			}
		})
	}
}

// BenchmarkPCGUint32N is the stdlib baseline for the same bounded draw
func BenchmarkPCGUint32N(b *testing.B) {
	r := rand.New(rand.NewPCG(uint64(DefaultLFSRSeed), 0))
	for i := 0; i < b.N; i++ {
		sink += r.Uint32N(2000)
	}
}
