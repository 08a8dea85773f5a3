package response

import (
	"errors"
	"math"
	"testing"

	"github.com/ZOwl/signal-processing/dsp/filter/analog"
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/internal/testutil"
)

func TestFreqs(t *testing.T) {
	// 1/(s+1)
	tf := lti.NewTf([]float64{1}, []float64{1, 1})
	w := []float64{0, 1, 10}

	h := Freqs(tf, w)
	want := []complex128{1, 1 / complex(1, 1), 1 / complex(1, 10)}
	testutil.RequireComplexSliceNearlyEqual(t, h, want, 1e-15)

	z, err := tf.ToZpk()
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, FreqsZpk(z, w), want, 1e-15)
}

func TestFreqzMatchesDirectEvaluation(t *testing.T) {
	tests := []struct {
		name string
		tf   lti.Tf
		n    int
	}{
		{"fir", lti.NewTf([]float64{0.25, 0.5, 0.25}, []float64{1}), 8},
		{"iir", lti.NewTf([]float64{0.2, 0.1}, []float64{1, -0.9, 0.4}), 64},
		{"single point", lti.NewTf([]float64{1, 1}, []float64{1, -0.5}), 1},
		{"folded", lti.NewTf(testutil.DeterministicCoefficients(3, 1, 11), []float64{1, 0.3}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, omega, err := Freqz(tt.tf, tt.n)
			if err != nil {
				t.Fatal(err)
			}

			if len(h) != tt.n || len(omega) != tt.n {
				t.Fatalf("got %d points and %d frequencies, want %d", len(h), len(omega), tt.n)
			}
			if omega[0] != 0 {
				t.Errorf("omega[0] = %v, want 0", omega[0])
			}
			if tt.n > 1 {
				if step := omega[1] - omega[0]; math.Abs(step-math.Pi/float64(tt.n)) > 1e-15 {
					t.Errorf("step = %v, want pi/%d", step, tt.n)
				}
			}

			direct := FreqzAt(tt.tf, omega)
			for k := range h {
				testutil.RequireRelativeNearlyEqual(t, h[k], direct[k], 1e-12)
			}
		})
	}
}

func TestFreqzInvalidLength(t *testing.T) {
	tf := lti.NewTf([]float64{1}, []float64{1})
	for _, n := range []int{0, -4, 3, 100} {
		if _, _, err := Freqz(tf, n); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("n=%d: expected ErrInvalidLength, got %v", n, err)
		}
	}
}

func TestFreqzButterworth(t *testing.T) {
	const (
		fs = 48000.0
		fc = 6000.0
		n  = 512
	)

	zpk, err := analog.Butter(4, []float64{fc}, analog.KindLowpass, analog.WithSampleRate(fs))
	if err != nil {
		t.Fatal(err)
	}

	h, _, err := Freqz(zpk.ToTf(), n)
	if err != nil {
		t.Fatal(err)
	}

	db := MagnitudeDB(h)
	if math.Abs(db[0]) > 1e-9 {
		t.Errorf("DC gain = %v dB, want 0", db[0])
	}

	// fc = fs/8 falls on bin n/4.
	if got := db[n/4]; math.Abs(got+3.0103) > 1e-3 {
		t.Errorf("gain at cutoff = %.4f dB, want -3.0103", got)
	}

	for k := 1; k < n; k++ {
		if db[k] > db[k-1]+1e-9 {
			t.Fatalf("response not monotonic at bin %d: %v > %v", k, db[k], db[k-1])
		}
	}
}

func TestMagnitudeAndPower(t *testing.T) {
	h := []complex128{complex(3, 4), 0, complex(0, -2)}

	testutil.RequireSliceNearlyEqual(t, Magnitude(h), []float64{5, 0, 2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(h), []float64{25, 0, 4}, 1e-12)

	db := MagnitudeDB(h)
	if math.Abs(db[0]-20*math.Log10(5)) > 1e-12 || !math.IsInf(db[1], -1) {
		t.Errorf("unexpected dB values %v", db)
	}

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Error("expected nil for empty input")
	}
}
