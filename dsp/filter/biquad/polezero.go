package biquad

import (
	"math/cmplx"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

// Poles returns the z-plane poles of the section, the roots of
// z^2 + A1*z + A2.
func (c *Coefficients) Poles() []complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section, the roots of
// B0*z^2 + B1*z + B2. Each leading zero coefficient removes one zero.
func (c *Coefficients) Zeros() []complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// Zpk returns the cascade as g*prod(z-z_i)/prod(z-p_i). Sections built
// from first-order factors contribute a cancelling zero and pole at the
// origin.
func (c *Chain) Zpk() lti.Zpk {
	out := lti.Zpk{Gain: complex(c.gain, 0)}
	for i := range c.sections {
		s := &c.sections[i].Coefficients
		out.Zeros = append(out.Zeros, s.Zeros()...)
		out.Poles = append(out.Poles, s.Poles()...)
		out.Gain *= complex(leading(s.B0, s.B1, s.B2), 0)
	}
	return out
}

func leading(c ...float64) float64 {
	for _, v := range c {
		if v != 0 {
			return v
		}
	}
	return 0
}

// quadraticRoots returns the roots of a*z^2 + b*z + c.
func quadraticRoots(a, b, c float64) []complex128 {
	switch {
	case a != 0:
		d := cmplx.Sqrt(complex(b*b-4*a*c, 0))
		den := complex(2*a, 0)
		return []complex128{(complex(-b, 0) + d) / den, (complex(-b, 0) - d) / den}
	case b != 0:
		return []complex128{complex(-c/b, 0)}
	default:
		return nil
	}
}
