package lti

import (
	"errors"
	"fmt"
	"math"

	"github.com/ZOwl/signal-processing/dsp/poly"
	"github.com/ZOwl/signal-processing/internal/polyroot"
)

// DefaultConjugateTol is the relative imaginary-part tolerance used to
// classify roots as real in [Zpk.ComplexReal].
const DefaultConjugateTol = 100 * 2.220446049250313e-16

// realTol bounds the imaginary residue accepted when [Zpk.ToTf] returns
// real coefficients for a conjugate-closed system.
const realTol = 1e-9

// Errors returned by Zpk conversions.
var (
	ErrToleranceRange = errors.New("lti: tolerance must be within [0, 1]")
	ErrOddComplex     = errors.New("lti: complex root without conjugate partner")
)

// Zpk is a system in zero-pole-gain form: Gain * prod(s - z) / prod(s - p).
// Repeated entries encode multiplicity.
type Zpk struct {
	Zeros []complex128
	Poles []complex128
	Gain  complex128
}

// Clone returns a deep copy of z.
func (z Zpk) Clone() Zpk {
	return Zpk{Zeros: cloneRoots(z.Zeros), Poles: cloneRoots(z.Poles), Gain: z.Gain}
}

// Order returns max(len(Zeros), len(Poles)).
func (z Zpk) Order() int {
	return max(len(z.Zeros), len(z.Poles))
}

// Eval returns the system response at s.
func (z Zpk) Eval(s complex128) complex128 {
	v := z.Gain
	for _, q := range z.Zeros {
		v *= s - q
	}
	for _, p := range z.Poles {
		v /= s - p
	}
	return v
}

// ToTf expands z into a transfer function. When the expanded coefficients
// are real up to rounding and the gain is real, imaginary parts are
// dropped.
func (z Zpk) ToTf() Tf {
	tf := Tf{
		B: poly.FromRoots(z.Zeros).Scale(z.Gain),
		A: poly.FromRoots(z.Poles),
	}
	if imag(z.Gain) == 0 && tf.IsReal(realTol) {
		tf.B = tf.B.TruncateIm()
		tf.A = tf.A.TruncateIm()
	}
	return tf
}

// Mul returns the series connection z*o.
func (z Zpk) Mul(o Zpk) Zpk {
	return Zpk{
		Zeros: concatRoots(z.Zeros, o.Zeros),
		Poles: concatRoots(z.Poles, o.Poles),
		Gain:  z.Gain * o.Gain,
	}
}

// Div returns z/o.
func (z Zpk) Div(o Zpk) Zpk {
	return z.Mul(o.Inv())
}

// Inv returns 1/z, swapping zeros and poles.
func (z Zpk) Inv() Zpk {
	return Zpk{Zeros: cloneRoots(z.Poles), Poles: cloneRoots(z.Zeros), Gain: 1 / z.Gain}
}

// Scale returns z with its gain multiplied by k.
func (z Zpk) Scale(k complex128) Zpk {
	out := z.Clone()
	out.Gain *= k
	return out
}

// RealSplit holds the zeros and poles of a system grouped into conjugate
// pairs and real values.
type RealSplit struct {
	ZeroPairs [][2]complex128
	PolePairs [][2]complex128
	RealZeros []float64
	RealPoles []float64
	Gain      complex128
}

// ComplexReal groups zeros and poles into conjugate pairs and real roots.
// A root is real when |imag| <= tol*|root|. tol must lie in [0, 1].
func (z Zpk) ComplexReal(tol float64) (RealSplit, error) {
	if math.IsNaN(tol) || tol < 0 || tol > 1 {
		return RealSplit{}, ErrToleranceRange
	}

	zc, zr, err := polyroot.SplitConjugates(z.Zeros, tol)
	if err != nil {
		return RealSplit{}, fmt.Errorf("lti: zeros: %w", ErrOddComplex)
	}

	pc, pr, err := polyroot.SplitConjugates(z.Poles, tol)
	if err != nil {
		return RealSplit{}, fmt.Errorf("lti: poles: %w", ErrOddComplex)
	}

	return RealSplit{ZeroPairs: zc, PolePairs: pc, RealZeros: zr, RealPoles: pr, Gain: z.Gain}, nil
}

func cloneRoots(r []complex128) []complex128 {
	if r == nil {
		return nil
	}
	out := make([]complex128, len(r))
	copy(out, r)
	return out
}

func concatRoots(a, b []complex128) []complex128 {
	out := make([]complex128, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
