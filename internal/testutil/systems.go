package testutil

import (
	"math"
	"math/rand"
)

// DeterministicPoles returns n distinct stable poles drawn with a fixed seed.
// Complex poles come in conjugate pairs; an odd n adds one real pole. All
// poles have magnitude in [0.5, 0.5+spread] and are separated by more than
// the default clustering tolerance.
func DeterministicPoles(seed int64, n int, spread float64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, 0, n)

	for len(out)+1 < n {
		r := 0.5 + rng.Float64()*spread
		theta := math.Pi/2 + (0.1+0.8*rng.Float64())*math.Pi/2
		p := complex(r*math.Cos(theta), r*math.Sin(theta))
		if tooClose(out, p) {
			continue
		}
		out = append(out, p, complex(real(p), -imag(p)))
	}

	for len(out) < n {
		p := complex(-(0.5 + rng.Float64()*spread), 0)
		if tooClose(out, p) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// DeterministicCoefficients returns n real coefficients in [-amplitude,
// amplitude] with a fixed seed. The first coefficient is never zero.
func DeterministicCoefficients(seed int64, amplitude float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	if n > 0 && out[0] == 0 {
		out[0] = amplitude
	}
	return out
}

func tooClose(existing []complex128, p complex128) bool {
	const minSeparation = 0.05
	for _, q := range existing {
		if math.Hypot(real(p-q), imag(p-q)) < minSeparation {
			return true
		}
	}
	return math.Abs(imag(p)) < minSeparation && imag(p) != 0
}
