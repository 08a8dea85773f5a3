package biquad

import (
	"errors"
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

// ErrNonCausal is returned for a section whose denominator vanishes at
// z^-1 = 0 after shared delays are removed.
var ErrNonCausal = errors.New("biquad: section is not causal")

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// FromSection converts a second-order section to normalized coefficients.
// Both arrays are read as ascending powers of z^-1; delays shared by the
// numerator and denominator are removed first, so first-order factors with
// a leading zero are accepted.
func FromSection(s lti.Section) (Coefficients, error) {
	b, a := s.B, s.A
	for range 2 {
		if a[0] != 0 || b[0] != 0 {
			break
		}
		b = [3]float64{b[1], b[2], 0}
		a = [3]float64{a[1], a[2], 0}
	}

	if a[0] == 0 {
		return Coefficients{}, fmt.Errorf("%w: a = %v", ErrNonCausal, s.A)
	}

	return Coefficients{
		B0: b[0] / a[0],
		B1: b[1] / a[0],
		B2: b[2] / a[0],
		A1: a[1] / a[0],
		A2: a[2] / a[0],
	}, nil
}

// Section is a single biquad filter with coefficients and internal state.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}
