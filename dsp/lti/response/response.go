// Package response evaluates frequency responses of LTI systems.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidLength is returned when the number of frequency points is not a
// positive power of two.
var ErrInvalidLength = errors.New("response: point count must be a positive power of two")

// Freqs returns the response of the analog system tf at the angular
// frequencies w (rad/s).
func Freqs(tf lti.Tf, w []float64) []complex128 {
	out := make([]complex128, len(w))
	for i, f := range w {
		out[i] = tf.Eval(complex(0, f))
	}
	return out
}

// FreqsZpk is [Freqs] for a system in zero-pole-gain form.
func FreqsZpk(zpk lti.Zpk, w []float64) []complex128 {
	out := make([]complex128, len(w))
	for i, f := range w {
		out[i] = zpk.Eval(complex(0, f))
	}
	return out
}

// FreqzAt returns the response of the discrete system tf, coefficients in
// ascending powers of z^-1, at the normalized angular frequencies omega
// (rad/sample).
func FreqzAt(tf lti.Tf, omega []float64) []complex128 {
	out := make([]complex128, len(omega))
	for i, w := range omega {
		out[i] = tf.EvalZ(complex(math.Cos(w), math.Sin(w)))
	}
	return out
}

// Freqz returns the response of the discrete system tf at n frequencies
// evenly spaced over [0, pi), together with those frequencies in
// rad/sample. n must be a power of two.
//
// Both polynomials are transformed with a 2n-point FFT. Coefficients beyond
// 2n are folded onto the FFT grid, which is exact at the returned
// frequencies.
func Freqz(tf lti.Tf, n int) ([]complex128, []float64, error) {
	if n <= 0 || bits.OnesCount(uint(n)) != 1 {
		return nil, nil, ErrInvalidLength
	}

	size := 2 * n

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	num, err := spectrum(plan, tf.B, size)
	if err != nil {
		return nil, nil, err
	}

	den, err := spectrum(plan, tf.A, size)
	if err != nil {
		return nil, nil, err
	}

	h := make([]complex128, n)
	for k := range h {
		h[k] = num[k] / den[k]
	}

	omega := make([]float64, n)
	if n > 1 {
		floats.Span(omega, 0, math.Pi*float64(n-1)/float64(n))
	}

	return h, omega, nil
}

func spectrum(plan *algofft.Plan[complex128], coeff []complex128, size int) ([]complex128, error) {
	padded := make([]complex128, size)
	for i, c := range coeff {
		padded[i%size] += c
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, padded); err != nil {
		return nil, fmt.Errorf("response: FFT: %w", err)
	}
	return out, nil
}

// Magnitude returns |h[k]|.
func Magnitude(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}
	re, im := split(h)
	out := make([]float64, len(h))
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |h[k]|^2.
func Power(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}
	re, im := split(h)
	out := make([]float64, len(h))
	vecmath.Power(out, re, im)
	return out
}

// MagnitudeDB returns 20*log10(|h[k]|). Zeros of the response map to -Inf.
func MagnitudeDB(h []complex128) []float64 {
	out := Magnitude(h)
	for i, m := range out {
		out[i] = 20 * math.Log10(m)
	}
	return out
}

func split(h []complex128) ([]float64, []float64) {
	buf := make([]float64, 2*len(h))
	re, im := buf[:len(h)], buf[len(h):]
	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}
