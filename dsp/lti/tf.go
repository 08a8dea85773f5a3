package lti

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ZOwl/signal-processing/dsp/poly"
)

// DefaultCancelTol is the relative distance below which a zero and a pole
// are treated as a common factor by [Tf.Simplify].
const DefaultCancelTol = 1e-8

// ErrZeroDenominator is returned when a conversion needs a non-zero
// denominator.
var ErrZeroDenominator = errors.New("lti: zero denominator")

// Tf is a transfer function B/A.
type Tf struct {
	B poly.Polynomial
	A poly.Polynomial
}

// NewTf returns a transfer function with real coefficients.
func NewTf(b, a []float64) Tf {
	return Tf{B: poly.FromReal(b...), A: poly.FromReal(a...)}
}

// Clone returns a deep copy of t.
func (t Tf) Clone() Tf {
	return Tf{B: t.B.Clone(), A: t.A.Clone()}
}

// Normalize strips leading zero coefficients from B and A.
func (t Tf) Normalize() Tf {
	return Tf{B: t.B.Trim(), A: t.A.Trim()}
}

// Eval returns B(s)/A(s).
func (t Tf) Eval(s complex128) complex128 {
	return t.B.Eval(s) / t.A.Eval(s)
}

// EvalZ evaluates a discrete-time transfer function whose coefficients are
// ascending powers of z^-1: sum(B[i] z^-i) / sum(A[i] z^-i).
func (t Tf) EvalZ(z complex128) complex128 {
	return evalInverse(t.B, z) / evalInverse(t.A, z)
}

func evalInverse(c poly.Polynomial, z complex128) complex128 {
	// Horner on the reversed coefficients in w = 1/z.
	w := 1 / z
	var v complex128
	for i := len(c) - 1; i >= 0; i-- {
		v = v*w + c[i]
	}
	return v
}

// IsProper reports whether deg(B) <= deg(A).
func (t Tf) IsProper() bool {
	return t.B.Degree() <= t.A.Degree()
}

// IsReal reports whether both polynomials have (numerically) real
// coefficients.
func (t Tf) IsReal(tol float64) bool {
	return t.B.IsReal(tol) && t.A.IsReal(tol)
}

// ToZpk converts t to zero-pole-gain form using the default root finder.
func (t Tf) ToZpk() (Zpk, error) {
	n := t.Normalize()
	if len(n.A) == 0 {
		return Zpk{}, ErrZeroDenominator
	}

	if len(n.B) == 0 {
		poles, err := n.A.Roots()
		if err != nil {
			return Zpk{}, fmt.Errorf("lti: denominator roots: %w", err)
		}
		return Zpk{Poles: poles}, nil
	}

	zeros, err := n.B.Roots()
	if err != nil {
		return Zpk{}, fmt.Errorf("lti: numerator roots: %w", err)
	}

	poles, err := n.A.Roots()
	if err != nil {
		return Zpk{}, fmt.Errorf("lti: denominator roots: %w", err)
	}

	return Zpk{Zeros: zeros, Poles: poles, Gain: n.B[0] / n.A[0]}, nil
}

// Simplify normalizes t, removes a common power of s and cancels zero/pole
// pairs closer than tol*max(1, |pole|). Leading coefficients are kept, so
// an input without common factors is returned unchanged apart from
// normalization. Real inputs produce real outputs.
func (t Tf) Simplify(tol float64) (Tf, error) {
	n := t.Normalize()
	if len(n.A) == 0 || len(n.B) == 0 {
		return n, nil
	}

	isReal := n.IsReal(0)

	for len(n.B) > 1 && len(n.A) > 1 && n.B[len(n.B)-1] == 0 && n.A[len(n.A)-1] == 0 {
		n.B = n.B[:len(n.B)-1]
		n.A = n.A[:len(n.A)-1]
	}

	zeros, err := n.B.Roots()
	if err != nil {
		return Tf{}, fmt.Errorf("lti: numerator roots: %w", err)
	}

	poles, err := n.A.Roots()
	if err != nil {
		return Tf{}, fmt.Errorf("lti: denominator roots: %w", err)
	}

	zeros, poles, cancelled := cancelCommon(zeros, poles, tol)
	if cancelled == 0 {
		return n, nil
	}

	out := Tf{
		B: poly.FromRoots(zeros).Scale(n.B[0]),
		A: poly.FromRoots(poles).Scale(n.A[0]),
	}
	if isReal {
		out.B = out.B.TruncateIm()
		out.A = out.A.TruncateIm()
	}
	return out, nil
}

// cancelCommon removes every zero that has a pole within tolerance, pairing
// each zero with its closest remaining pole.
func cancelCommon(zeros, poles []complex128, tol float64) ([]complex128, []complex128, int) {
	keptZeros := make([]complex128, 0, len(zeros))
	rest := make([]complex128, len(poles))
	copy(rest, poles)

	cancelled := 0
	for _, z := range zeros {
		best := -1
		bestDist := math.Inf(1)
		for j, p := range rest {
			if d := cmplx.Abs(z - p); d < bestDist {
				best, bestDist = j, d
			}
		}

		if best >= 0 && bestDist <= tol*math.Max(1, cmplx.Abs(rest[best])) {
			rest = append(rest[:best], rest[best+1:]...)
			cancelled++
			continue
		}
		keptZeros = append(keptZeros, z)
	}

	return keptZeros, rest, cancelled
}
