// Package poly provides dense polynomials over complex128 with coefficients
// stored highest degree first.
//
// Real polynomials embed as complex coefficients with zero imaginary part,
// so a single arithmetic path serves both real and complex systems. Every
// method returns a freshly allocated result and never aliases its receiver.
package poly

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ZOwl/signal-processing/internal/polyroot"
)

// ErrDivisionByZero is returned when dividing by the zero polynomial.
var ErrDivisionByZero = errors.New("poly: division by zero polynomial")

// Polynomial holds coefficients in descending power order:
// p[0]*x^n + p[1]*x^(n-1) + ... + p[n].
//
// A nil or all-zero slice is the zero polynomial.
type Polynomial []complex128

// RootFinder computes all complex roots of a polynomial whose coefficients
// are given in descending power order.
type RootFinder func(coeff []complex128) ([]complex128, error)

// Root finders available to [Polynomial.RootsWith].
var (
	// DefaultRootFinder uses the companion matrix for real coefficients and
	// Durand-Kerner iteration otherwise.
	DefaultRootFinder RootFinder = polyroot.Roots
	// DurandKerner always uses simultaneous Weierstrass iteration.
	DurandKerner RootFinder = polyroot.DurandKerner
	// Companion always uses companion matrix eigenvalues (real part of the
	// coefficients only).
	Companion RootFinder = polyroot.Companion
)

// New returns a polynomial holding a copy of coeff.
func New(coeff ...complex128) Polynomial {
	out := make(Polynomial, len(coeff))
	copy(out, coeff)
	return out
}

// FromReal returns a polynomial with the given real coefficients.
func FromReal(coeff ...float64) Polynomial {
	out := make(Polynomial, len(coeff))
	for i, c := range coeff {
		out[i] = complex(c, 0)
	}
	return out
}

// FromRoots returns the monic polynomial whose roots are the given values,
// i.e. (x - roots[0])(x - roots[1])...
func FromRoots(roots []complex128) Polynomial {
	out := Polynomial{1}
	for _, r := range roots {
		out = out.Mul(Polynomial{1, -r})
	}
	return out
}

// Monomial returns (x - root)^n.
func Monomial(root complex128, n int) Polynomial {
	out := Polynomial{1}
	for range n {
		out = out.Mul(Polynomial{1, -root})
	}
	return out
}

// Clone returns a copy of p.
func (p Polynomial) Clone() Polynomial {
	return New(p...)
}

// Trim returns a copy of p without leading zero coefficients. The zero
// polynomial trims to an empty slice.
func (p Polynomial) Trim() Polynomial {
	i := 0
	for i < len(p) && p[i] == 0 {
		i++
	}
	return New(p[i:]...)
}

// TrimRel returns a copy of p without leading coefficients whose magnitude
// is at most rel times the largest coefficient magnitude.
func (p Polynomial) TrimRel(rel float64) Polynomial {
	var peak float64
	for _, c := range p {
		peak = math.Max(peak, cmplx.Abs(c))
	}

	i := 0
	for i < len(p) && cmplx.Abs(p[i]) <= rel*peak {
		i++
	}
	return New(p[i:]...)
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	return len(p.Trim()) - 1
}

// At returns the coefficient of x^k, or 0 when p has no such term.
func (p Polynomial) At(k int) complex128 {
	i := len(p) - 1 - k
	if k < 0 || i < 0 {
		return 0
	}
	return p[i]
}

// Eval evaluates p at x using Horner's method.
func (p Polynomial) Eval(x complex128) complex128 {
	return polyroot.PolyEval(p, x)
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := max(len(p), len(q))
	out := make(Polynomial, n)
	for i, c := range p {
		out[n-len(p)+i] += c
	}
	for i, c := range q {
		out[n-len(q)+i] += c
	}
	return out
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.Add(q.Scale(-1))
}

// Scale returns c*p.
func (p Polynomial) Scale(c complex128) Polynomial {
	out := make(Polynomial, len(p))
	for i, v := range p {
		out[i] = v * c
	}
	return out
}

// Mul returns p*q (coefficient convolution).
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{}
	}

	out := make(Polynomial, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}

// DivRem performs Euclidean division and returns quotient and remainder
// such that p = quo*d + rem with deg(rem) < deg(d). Both results are
// trimmed; an empty slice denotes zero.
func (p Polynomial) DivRem(d Polynomial) (Polynomial, Polynomial, error) {
	num := p.Trim()
	den := d.Trim()

	if len(den) == 0 {
		return nil, nil, ErrDivisionByZero
	}

	if len(num) < len(den) {
		return Polynomial{}, num, nil
	}

	rem := num.Clone()
	quo := make(Polynomial, len(num)-len(den)+1)
	lead := den[0]

	for i := range quo {
		c := rem[i] / lead
		quo[i] = c
		if c == 0 {
			continue
		}
		for j, v := range den {
			rem[i+j] -= c * v
		}
	}

	return quo, rem[len(quo):].Trim(), nil
}

// Reverse returns the coefficients of p in reverse order, i.e. the
// polynomial x^n * p(1/x) for n = len(p)-1.
func (p Polynomial) Reverse() Polynomial {
	out := make(Polynomial, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// Conj returns p with every coefficient complex-conjugated.
func (p Polynomial) Conj() Polynomial {
	out := make(Polynomial, len(p))
	for i, c := range p {
		out[i] = cmplx.Conj(c)
	}
	return out
}

// ReverseConj reverses the coefficient order and conjugates every
// coefficient.
func (p Polynomial) ReverseConj() Polynomial {
	return p.Reverse().Conj()
}

// Roots returns all roots of p using [DefaultRootFinder].
func (p Polynomial) Roots() ([]complex128, error) {
	return p.RootsWith(DefaultRootFinder)
}

// RootsWith returns all roots of p using finder. Leading zeros are ignored;
// constant polynomials have no roots.
func (p Polynomial) RootsWith(finder RootFinder) ([]complex128, error) {
	t := p.Trim()
	if len(t) < 2 {
		return nil, nil
	}
	if finder == nil {
		finder = DefaultRootFinder
	}
	return finder(t)
}

// IsReal reports whether every imaginary part is at most tol*max(1, |c|).
func (p Polynomial) IsReal(tol float64) bool {
	for _, c := range p {
		if math.Abs(imag(c)) > tol*math.Max(1, cmplx.Abs(c)) {
			return false
		}
	}
	return true
}

// Real returns the real parts of the coefficients.
func (p Polynomial) Real() []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = real(c)
	}
	return out
}

// TruncateIm returns p with all imaginary parts set to zero.
func (p Polynomial) TruncateIm() Polynomial {
	return FromReal(p.Real()...)
}
