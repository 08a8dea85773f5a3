package biquad

import (
	"errors"
	"math"
	"testing"

	"github.com/ZOwl/signal-processing/dsp/filter/analog"
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/dsp/lti/residue"
	"github.com/ZOwl/signal-processing/internal/testutil"
)

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func digitalButter(t *testing.T, order int, kind analog.Kind, freqs ...float64) lti.Zpk {
	t.Helper()
	zpk, err := analog.Butter(order, freqs, kind, analog.WithSampleRate(48000))
	if err != nil {
		t.Fatal(err)
	}
	return zpk
}

func chainFor(t *testing.T, zpk lti.Zpk) *Chain {
	t.Helper()
	sections, err := zpk.ToSos(lti.DefaultConjugateTol)
	if err != nil {
		t.Fatal(err)
	}
	chain, err := FromSos(sections)
	if err != nil {
		t.Fatal(err)
	}
	return chain
}

// directImpulse runs the difference equation of tf, read in powers of z^-1.
func directImpulse(tf lti.Tf, n int) []float64 {
	b, a := tf.B.Real(), tf.A.Real()
	y := make([]float64, n)
	for i := range y {
		var acc float64
		if i < len(b) {
			acc = b[i]
		}
		for k := 1; k < len(a) && k <= i; k++ {
			acc -= a[k] * y[i-k]
		}
		y[i] = acc / a[0]
	}
	return y
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs, WithGain(0.5))

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		ref := section2.ProcessSample(section1.ProcessSample(0.5 * x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	ref := NewChain(twoSectionCoeffs(), WithGain(2))
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	got := append([]float64(nil), input...)
	NewChain(twoSectionCoeffs(), WithGain(2)).ProcessBlock(got)

	testutil.RequireSliceNearlyEqual(t, got, want, eps)
}

func TestChain_ImpulseMatchesDifferenceEquation(t *testing.T) {
	tests := []struct {
		name string
		zpk  lti.Zpk
	}{
		{"lowpass order 4", digitalButter(t, 4, analog.KindLowpass, 1000)},
		{"highpass order 3", digitalButter(t, 3, analog.KindHighpass, 200)},
		{"bandstop order 2", digitalButter(t, 2, analog.KindBandstop, 500, 2000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := chainFor(t, tt.zpk)
			got := chain.Impulse(64)
			want := directImpulse(tt.zpk.ToTf(), 64)
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
		})
	}
}

// A discrete system with simple poles has h[n] = sum r_i p_i^n + k[n].
func TestChain_ImpulseMatchesResidueExpansion(t *testing.T) {
	zpk := digitalButter(t, 4, analog.KindLowpass, 1000)
	got := chainFor(t, zpk).Impulse(48)

	rpk, err := residue.ResidueZ(zpk.ToTf())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range rpk.Powers() {
		if k != 1 {
			t.Fatalf("expected simple poles, got powers %v", rpk.Powers())
		}
	}

	want := make([]float64, len(got))
	for n := range want {
		var h complex128
		for _, term := range rpk.Terms {
			h += term.Residue * complexPow(term.Pole, n)
		}
		if n < len(rpk.K) {
			h += rpk.K[n]
		}
		want[n] = real(h)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func complexPow(p complex128, n int) complex128 {
	v := complex(1, 0)
	for range n {
		v *= p
	}
	return v
}

func TestChain_ZpkRoundTrip(t *testing.T) {
	for _, order := range []int{2, 3, 5} {
		zpk := digitalButter(t, order, analog.KindLowpass, 3000)
		back := chainFor(t, zpk).Zpk()

		for _, z := range []complex128{complex(0.3, 0.4), complex(0, -0.7), 2, -0.2} {
			testutil.RequireRelativeNearlyEqual(t, back.Eval(z), zpk.Eval(z), 1e-9)
		}
	}
}

func TestChain_Impulse_ResetsState(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	first := chain.Impulse(16)

	chain.ProcessSample(3)
	second := chain.Impulse(16)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)

	if out := chain.Impulse(0); out != nil {
		t.Errorf("Impulse(0) = %v, want nil", out)
	}
}

func TestFromSos_Error(t *testing.T) {
	sections := []lti.Section{
		{B: [3]float64{1, 0, 0}, A: [3]float64{1, 0, 0}},
		{B: [3]float64{1, 0, 0}, A: [3]float64{0, 0, 1}},
	}
	if _, err := FromSos(sections); !errors.Is(err, ErrNonCausal) {
		t.Fatalf("expected ErrNonCausal, got %v", err)
	}
}

func TestChain_StableForDigitalDesigns(t *testing.T) {
	chain := chainFor(t, digitalButter(t, 6, analog.KindBandpass, 400, 1600))
	if chain.NumSections() != 6 {
		t.Fatalf("NumSections: got %d, want 6", chain.NumSections())
	}

	h := chain.Impulse(48000)
	if tail := math.Abs(h[len(h)-1]); tail > 1e-9 {
		t.Errorf("impulse response does not decay: |h[end]| = %g", tail)
	}
}

func TestChain_StepIsRunningSumOfImpulse(t *testing.T) {
	chain := chainFor(t, digitalButter(t, 4, analog.KindLowpass, 2000))

	h := chain.Impulse(512)
	want := make([]float64, len(h))
	var acc float64
	for i, v := range h {
		acc += v
		want[i] = acc
	}

	step := chain.Step(512)
	testutil.RequireSliceNearlyEqual(t, step, want, 1e-9)

	// Unity DC gain.
	if last := step[len(step)-1]; !almostEqual(last, 1, 1e-6) {
		t.Errorf("step response settles at %v, want 1", last)
	}
}
