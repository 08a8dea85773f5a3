package analog

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

var (
	// ErrNonCausal is returned when a system has more zeros than poles.
	ErrNonCausal = errors.New("analog: more zeros than poles")
	// ErrZeroPoles is returned when a system has no poles.
	ErrZeroPoles = errors.New("analog: system has no poles")
	// ErrInvalidFrequencies is returned for a frequency list that is not one
	// or two finite, positive, non-decreasing values.
	ErrInvalidFrequencies = errors.New("analog: invalid target frequencies")
)

// SFTrans transforms the normalized lowpass prototype zpk.
//
// With one frequency fc the result is a lowpass (stop = false) or highpass
// (stop = true) with cutoff fc. With two frequencies [fl, fh] the result is
// a bandpass (stop = false) or bandstop (stop = true) with band edges fl
// and fh. Each zero and pole maps to one root for lowpass and highpass and
// to two roots for the band transforms; zeros at infinity of the prototype
// are placed at the finite image of infinity.
func SFTrans(zpk lti.Zpk, w []float64, stop bool) (lti.Zpk, error) {
	p, z := len(zpk.Poles), len(zpk.Zeros)
	if z > p {
		return lti.Zpk{}, ErrNonCausal
	}
	if p == 0 {
		return lti.Zpk{}, ErrZeroPoles
	}

	if err := checkFrequencies(w); err != nil {
		return lti.Zpk{}, err
	}

	if len(w) == 2 {
		if stop {
			return bandstop(zpk, w[0], w[1]), nil
		}
		return bandpass(zpk, w[0], w[1]), nil
	}

	if stop {
		return highpass(zpk, w[0]), nil
	}
	return lowpass(zpk, w[0]), nil
}

// Lowpass scales the prototype cutoff to fc.
func Lowpass(zpk lti.Zpk, fc float64) (lti.Zpk, error) {
	return SFTrans(zpk, []float64{fc}, false)
}

// Highpass turns the prototype into a highpass with cutoff fc.
func Highpass(zpk lti.Zpk, fc float64) (lti.Zpk, error) {
	return SFTrans(zpk, []float64{fc}, true)
}

// Bandpass turns the prototype into a bandpass between fl and fh.
func Bandpass(zpk lti.Zpk, fl, fh float64) (lti.Zpk, error) {
	return SFTrans(zpk, []float64{fl, fh}, false)
}

// Bandstop turns the prototype into a bandstop between fl and fh.
func Bandstop(zpk lti.Zpk, fl, fh float64) (lti.Zpk, error) {
	return SFTrans(zpk, []float64{fl, fh}, true)
}

func checkFrequencies(w []float64) error {
	if len(w) != 1 && len(w) != 2 {
		return ErrInvalidFrequencies
	}
	for _, f := range w {
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return ErrInvalidFrequencies
		}
	}
	if len(w) == 2 && w[0] > w[1] {
		return ErrInvalidFrequencies
	}
	return nil
}

// s -> s/fc
func lowpass(zpk lti.Zpk, fc float64) lti.Zpk {
	c := complex(fc, 0)
	out := lti.Zpk{
		Zeros: make([]complex128, len(zpk.Zeros)),
		Poles: make([]complex128, len(zpk.Poles)),
		Gain:  zpk.Gain * complex(math.Pow(fc, float64(len(zpk.Poles)-len(zpk.Zeros))), 0),
	}
	for i, q := range zpk.Zeros {
		out.Zeros[i] = q * c
	}
	for i, q := range zpk.Poles {
		out.Poles[i] = q * c
	}
	return out
}

// s -> fc/s
func highpass(zpk lti.Zpk, fc float64) lti.Zpk {
	c := complex(fc, 0)
	out := lti.Zpk{
		Zeros: make([]complex128, 0, len(zpk.Poles)),
		Poles: make([]complex128, len(zpk.Poles)),
		Gain:  zpk.Gain * negatedRatio(zpk),
	}
	for _, q := range zpk.Zeros {
		out.Zeros = append(out.Zeros, c/q)
	}
	for range len(zpk.Poles) - len(zpk.Zeros) {
		out.Zeros = append(out.Zeros, 0)
	}
	for i, q := range zpk.Poles {
		out.Poles[i] = c / q
	}
	return out
}

// s -> (s^2 + fl*fh) / (s*(fh-fl))
func bandpass(zpk lti.Zpk, fl, fh float64) lti.Zpk {
	bw := fh - fl
	w0sq := complex(fl*fh, 0)
	scale := func(q complex128) complex128 { return q * complex(bw/2, 0) }

	zeros := splitRoots(zpk.Zeros, scale, w0sq)
	for range len(zpk.Poles) - len(zpk.Zeros) {
		zeros = append(zeros, 0)
	}

	return lti.Zpk{
		Zeros: zeros,
		Poles: splitRoots(zpk.Poles, scale, w0sq),
		Gain:  zpk.Gain * complex(math.Pow(bw, float64(len(zpk.Poles)-len(zpk.Zeros))), 0),
	}
}

// s -> s*(fh-fl) / (s^2 + fl*fh)
func bandstop(zpk lti.Zpk, fl, fh float64) lti.Zpk {
	bw := fh - fl
	w0sq := complex(fl*fh, 0)
	scale := func(q complex128) complex128 { return complex(bw/2, 0) / q }

	// The image of s = infinity is the pair +-j*sqrt(fl*fh).
	extend := complex(0, math.Sqrt(fl*fh))
	zeros := splitRoots(zpk.Zeros, scale, w0sq)
	for i := 1; i <= 2*(len(zpk.Poles)-len(zpk.Zeros)); i++ {
		if i%2 == 1 {
			zeros = append(zeros, -extend)
		} else {
			zeros = append(zeros, extend)
		}
	}

	return lti.Zpk{
		Zeros: zeros,
		Poles: splitRoots(zpk.Poles, scale, w0sq),
		Gain:  zpk.Gain * negatedRatio(zpk),
	}
}

// splitRoots maps each root q to the pair b +- sqrt(b^2 - w0sq) with
// b = scale(q), using the principal square root. All "+" roots come first.
func splitRoots(roots []complex128, scale func(complex128) complex128, w0sq complex128) []complex128 {
	out := make([]complex128, 2*len(roots))
	for i, q := range roots {
		b := scale(q)
		d := cmplx.Sqrt(b*b - w0sq)
		out[i] = b + d
		out[len(roots)+i] = b - d
	}
	return out
}

// negatedRatio returns Re(prod(-zeros) / prod(-poles)).
func negatedRatio(zpk lti.Zpk) complex128 {
	num := complex(1, 0)
	for _, q := range zpk.Zeros {
		num *= -q
	}
	den := complex(1, 0)
	for _, q := range zpk.Poles {
		den *= -q
	}
	return complex(real(num/den), 0)
}
