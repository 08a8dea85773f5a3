package analog

import (
	"errors"
	"math"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

// ErrInvalidPeriod is returned for a non-positive or non-finite sampling
// period.
var ErrInvalidPeriod = errors.New("analog: sampling period must be positive")

// Bilinear maps the analog system zpk to the z-plane with sampling period
// t, substituting s = (2/t)(z-1)/(z+1). Zeros at infinity map to z = -1.
// The gain is real.
func Bilinear(zpk lti.Zpk, t float64) (lti.Zpk, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return lti.Zpk{}, ErrInvalidPeriod
	}

	p, z := len(zpk.Poles), len(zpk.Zeros)
	if z > p {
		return lti.Zpk{}, ErrNonCausal
	}

	tc := complex(t, 0)
	gain := zpk.Gain

	out := lti.Zpk{
		Zeros: make([]complex128, 0, p),
		Poles: make([]complex128, p),
	}

	for _, q := range zpk.Zeros {
		gain *= (2 - q*tc) / tc
		out.Zeros = append(out.Zeros, (2+q*tc)/(2-q*tc))
	}
	for range p - z {
		out.Zeros = append(out.Zeros, -1)
	}

	for i, q := range zpk.Poles {
		gain /= (2 - q*tc) / tc
		out.Poles[i] = (2 + q*tc) / (2 - q*tc)
	}

	out.Gain = complex(real(gain), 0)
	return out, nil
}
