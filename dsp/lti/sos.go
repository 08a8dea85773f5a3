package lti

import (
	"fmt"

	"github.com/ZOwl/signal-processing/internal/polyroot"
)

// Section is a second-order section B/A with three coefficients each,
// highest degree first. Lower-order factors are padded with leading
// zeros, so the same arrays read as ascending powers of z^-1 for
// discrete-time systems. Quadratic factors produced by ToSos are monic.
type Section struct {
	B [3]float64
	A [3]float64
}

// ToSos factors a real system into second-order sections. Conjugate pairs
// form quadratic factors first, remaining real roots are paired in order.
// The system gain is applied to the first section.
func (z Zpk) ToSos(tol float64) ([]Section, error) {
	if imag(z.Gain) != 0 {
		return nil, fmt.Errorf("lti: complex gain %v: %w", z.Gain, ErrOddComplex)
	}

	split, err := z.ComplexReal(tol)
	if err != nil {
		return nil, err
	}

	num, err := quadFactors(split.ZeroPairs, split.RealZeros)
	if err != nil {
		return nil, err
	}

	den, err := quadFactors(split.PolePairs, split.RealPoles)
	if err != nil {
		return nil, err
	}

	n := max(len(num), len(den), 1)
	sections := make([]Section, n)
	for i := range sections {
		sections[i].B = [3]float64{0, 0, 1}
		sections[i].A = [3]float64{0, 0, 1}
		if i < len(num) {
			sections[i].B = num[i]
		}
		if i < len(den) {
			sections[i].A = den[i]
		}
	}

	g := real(split.Gain)
	for j := range sections[0].B {
		sections[0].B[j] *= g
	}

	return sections, nil
}

func quadFactors(pairs [][2]complex128, reals []float64) ([][3]float64, error) {
	out := make([][3]float64, 0, len(pairs)+(len(reals)+1)/2)

	for _, pair := range pairs {
		c0, c1, c2, err := polyroot.QuadFromRoots(pair)
		if err != nil {
			return nil, fmt.Errorf("lti: pair %v: %w", pair, ErrOddComplex)
		}
		out = append(out, [3]float64{c0, c1, c2})
	}

	for i := 0; i+1 < len(reals); i += 2 {
		a, b := reals[i], reals[i+1]
		out = append(out, [3]float64{1, -(a + b), a * b})
	}

	if len(reals)%2 == 1 {
		out = append(out, [3]float64{0, 1, -reals[len(reals)-1]})
	}

	return out, nil
}

// EvalSections returns the product of all section responses at x, reading each
// section as a polynomial ratio in x.
func EvalSections(sections []Section, x complex128) complex128 {
	v := complex(1, 0)
	for _, s := range sections {
		num := complex(s.B[0], 0)*x*x + complex(s.B[1], 0)*x + complex(s.B[2], 0)
		den := complex(s.A[0], 0)*x*x + complex(s.A[1], 0)*x + complex(s.A[2], 0)
		v *= num / den
	}
	return v
}
