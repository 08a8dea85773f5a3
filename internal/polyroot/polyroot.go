// Package polyroot provides polynomial root finders and conjugate pairing
// utilities shared by the LTI system packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ErrOddComplex is returned when a complex root has no conjugate partner.
var ErrOddComplex = errors.New("polyroot: complex root without conjugate partner")

// Roots finds all roots of a polynomial given in descending power order.
// Real-coefficient polynomials are solved through the companion matrix;
// polynomials with complex coefficients fall back to [DurandKerner].
// Constant polynomials have no roots.
func Roots(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		if len(coeff) == 1 && coeff[0] == 0 {
			return nil, ErrDegeneratePolynomial
		}
		return nil, nil
	}

	for _, c := range coeff {
		if imag(c) != 0 {
			return DurandKerner(coeff)
		}
	}

	return Companion(coeff)
}

// Companion finds the roots of a real-coefficient polynomial as the
// eigenvalues of its companion matrix. Imaginary parts of coeff are ignored.
func Companion(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := real(coeff[0])
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1
	if n == 1 {
		return []complex128{complex(-real(coeff[1])/lead, 0)}, nil
	}

	data := make([]float64, n*n)
	for j := range n {
		data[j] = -real(coeff[j+1]) / lead
	}
	for i := 1; i < n; i++ {
		data[i*n+i-1] = 1
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, data), mat.EigenNone); !ok {
		return nil, ErrDegeneratePolynomial
	}

	return eig.Values(nil), nil
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol*radius {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// QuadFromRoots expands a conjugate root pair into monic second-order
// polynomial coefficients. Given roots (a+jb) and (a-jb), it returns the
// coefficients of z^2 - 2a*z + (a^2 + b^2) as (1, -2a, a^2+b^2).
func QuadFromRoots(pair [2]complex128) (float64, float64, float64, error) {
	root1 := pair[0]
	root2 := pair[1]

	if !IsConjugate(root1, root2, ConjugateTol) {
		return 0, 0, 0, ErrDegeneratePolynomial
	}

	a := real(root1)
	b := math.Abs(imag(root1))

	return 1.0, -2 * a, a*a + b*b, nil
}

// SplitConjugates separates roots into conjugate pairs and real roots.
// A root counts as real when |imag| <= tol*|root|. Roots are consumed from
// the end of the slice; every complex root is paired with the remaining
// complex root closest to its conjugate. The input slice is not modified.
func SplitConjugates(roots []complex128, tol float64) ([][2]complex128, []float64, error) {
	rest := make([]complex128, len(roots))
	copy(rest, roots)

	isReal := func(z complex128) bool {
		return z == 0 || math.Abs(imag(z)) <= tol*cmplx.Abs(z)
	}

	var (
		pairs [][2]complex128
		reals []float64
	)

	for len(rest) > 0 {
		root := rest[len(rest)-1]
		rest = rest[:len(rest)-1]

		if isReal(root) {
			reals = append(reals, real(root))
			continue
		}

		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j, cand := range rest {
			if isReal(cand) {
				continue
			}

			if d := cmplx.Abs(cand - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 {
			return nil, nil, ErrOddComplex
		}

		pairs = append(pairs, [2]complex128{root, rest[best]})
		rest = append(rest[:best], rest[best+1:]...)
	}

	return pairs, reals, nil
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}
