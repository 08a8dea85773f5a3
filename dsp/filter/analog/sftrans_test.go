package analog

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/internal/testutil"
)

var probePoints = []complex128{
	complex(0, 0.3),
	complex(0, 1.7),
	complex(0.4, 2.5),
	complex(-0.2, 4),
	complex(0, 11),
}

// prototype with one finite zero pair, three poles.
func testPrototype() lti.Zpk {
	return lti.Zpk{
		Zeros: []complex128{complex(0, 2), complex(0, -2)},
		Poles: []complex128{complex(-0.5, 0.9), complex(-0.5, -0.9), -1},
		Gain:  0.8,
	}
}

func TestSFTransLowpassIdentity(t *testing.T) {
	proto, err := ButterworthPrototype(4)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Lowpass(proto, 1)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireComplexSliceNearlyEqual(t, got.Poles, proto.Poles, 0)
	if len(got.Zeros) != 0 || got.Gain != proto.Gain {
		t.Errorf("expected unchanged zeros and gain, got %+v", got)
	}
}

func TestSFTransMatchesSubstitution(t *testing.T) {
	proto := testPrototype()
	const (
		fc = 3.0
		fl = 2.0
		fh = 5.0
	)

	tests := []struct {
		name   string
		w      []float64
		stop   bool
		zeros  int
		poles  int
		mapped func(s complex128) complex128
	}{
		{"lowpass", []float64{fc}, false, 2, 3, func(s complex128) complex128 { return s / fc }},
		{"highpass", []float64{fc}, true, 3, 3, func(s complex128) complex128 { return fc / s }},
		{"bandpass", []float64{fl, fh}, false, 5, 6, func(s complex128) complex128 {
			return (s*s + fl*fh) / (s * (fh - fl))
		}},
		{"bandstop", []float64{fl, fh}, true, 6, 6, func(s complex128) complex128 {
			return s * (fh - fl) / (s*s + fl*fh)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SFTrans(proto, tt.w, tt.stop)
			if err != nil {
				t.Fatal(err)
			}

			if len(got.Zeros) != tt.zeros || len(got.Poles) != tt.poles {
				t.Fatalf("got %d zeros, %d poles; want %d, %d",
					len(got.Zeros), len(got.Poles), tt.zeros, tt.poles)
			}

			for _, s := range probePoints {
				testutil.RequireRelativeNearlyEqual(t, got.Eval(s), proto.Eval(tt.mapped(s)), 1e-10)
			}
		})
	}
}

func TestSFTransDoesNotModifyInput(t *testing.T) {
	proto := testPrototype()
	before := proto.Clone()

	for _, w := range [][]float64{{2}, {1, 3}} {
		for _, stop := range []bool{false, true} {
			if _, err := SFTrans(proto, w, stop); err != nil {
				t.Fatal(err)
			}
		}
	}

	testutil.RequireComplexSliceNearlyEqual(t, proto.Poles, before.Poles, 0)
	testutil.RequireComplexSliceNearlyEqual(t, proto.Zeros, before.Zeros, 0)
}

func TestBandpassDoubling(t *testing.T) {
	const fl, fh = 0.5, 2.0
	proto := lti.Zpk{Poles: []complex128{-1}, Gain: 1}

	got, err := Bandpass(proto, fl, fh)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Poles) != 2 {
		t.Fatalf("expected 2 poles, got %v", got.Poles)
	}

	b := complex(-1*(fh-fl)/2, 0)
	testutil.RequireRelativeNearlyEqual(t, got.Poles[0]*got.Poles[1], fl*fh, 1e-12)
	testutil.RequireRelativeNearlyEqual(t, got.Poles[0]+got.Poles[1], 2*b, 1e-12)

	if len(got.Zeros) != 1 || got.Zeros[0] != 0 {
		t.Errorf("expected one zero at the origin, got %v", got.Zeros)
	}
	if got.Gain != complex(fh-fl, 0) {
		t.Errorf("gain = %v, want %v", got.Gain, fh-fl)
	}
}

func TestBandstopZerosAtCenter(t *testing.T) {
	const fl, fh = 1.0, 4.0
	proto, err := ButterworthPrototype(2)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Bandstop(proto, fl, fh)
	if err != nil {
		t.Fatal(err)
	}

	w0 := math.Sqrt(fl * fh)
	want := []complex128{complex(0, -w0), complex(0, w0), complex(0, -w0), complex(0, w0)}
	testutil.RequireComplexSliceNearlyEqual(t, got.Zeros, want, 1e-12)

	if cmplx.Abs(got.Eval(complex(0, w0))) != 0 {
		t.Errorf("expected a notch at the center frequency")
	}
	testutil.RequireRelativeNearlyEqual(t, got.Eval(0), 1, 1e-12)
}

func TestHighpassZerosAtOrigin(t *testing.T) {
	proto, err := ButterworthPrototype(3)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Highpass(proto, 10)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireComplexSliceNearlyEqual(t, got.Zeros, []complex128{0, 0, 0}, 0)
	if imag(got.Gain) != 0 {
		t.Errorf("expected real gain, got %v", got.Gain)
	}
	testutil.RequireRelativeNearlyEqual(t, got.Eval(complex(0, 1e12)), 1, 1e-9)
}

func TestSFTransErrors(t *testing.T) {
	proto := testPrototype()

	tests := []struct {
		name string
		zpk  lti.Zpk
		w    []float64
		want error
	}{
		{"zero poles", lti.Zpk{Gain: 1}, []float64{1}, ErrZeroPoles},
		{"non-causal", lti.Zpk{Zeros: []complex128{1, 2}, Poles: []complex128{-1}, Gain: 1}, []float64{1}, ErrNonCausal},
		{"no frequencies", proto, nil, ErrInvalidFrequencies},
		{"three frequencies", proto, []float64{1, 2, 3}, ErrInvalidFrequencies},
		{"negative", proto, []float64{-1}, ErrInvalidFrequencies},
		{"zero", proto, []float64{0, 1}, ErrInvalidFrequencies},
		{"nan", proto, []float64{math.NaN()}, ErrInvalidFrequencies},
		{"descending", proto, []float64{3, 1}, ErrInvalidFrequencies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, stop := range []bool{false, true} {
				if _, err := SFTrans(tt.zpk, tt.w, stop); !errors.Is(err, tt.want) {
					t.Errorf("stop=%v: expected %v, got %v", stop, tt.want, err)
				}
			}
		})
	}
}
