package residue

import (
	"errors"
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

// ErrPoleAtInfinity is returned when the coordinate change between z^-1
// and z maps a pole to infinity.
var ErrPoleAtInfinity = errors.New("residue: pole at infinity")

// ResidueZ expands a discrete-time transfer function, with coefficients in
// ascending powers of z^-1, into
//
//	sum_j r_j/(1-p_j z^-1)^k_j + sum_i K[i] z^-i.
//
// The system is simplified first. A zero denominator returns the fallback
// expansion of [Residue] unchanged.
//
// Coefficients are reversed and conjugated before the expansion and K is
// conjugated back afterwards. For real coefficients this is the expansion
// of tf itself. For complex coefficients the terms expand the conjugate
// system conj(H(conj z)), whose poles are the conjugates of the poles of
// tf, and K is the conjugate of that system's direct part. [InvertZ]
// applies the same steps, so InvertZ(ResidueZ(tf)) returns tf.
func ResidueZ(tf lti.Tf, opts ...Option) (lti.Rpk, error) {
	if _, err := applyOptions(opts...); err != nil {
		return lti.Rpk{}, err
	}

	w, err := toInverse(tf).Simplify(lti.DefaultCancelTol)
	if err != nil {
		return lti.Rpk{}, fmt.Errorf("residue: simplify: %w", err)
	}

	rpk, err := Residue(w, opts...)
	if err != nil {
		return lti.Rpk{}, err
	}

	if len(w.A) == 0 {
		return rpk, nil
	}

	terms, err := invertTerms(rpk)
	if err != nil {
		return lti.Rpk{}, err
	}

	return lti.Rpk{Terms: terms, K: rpk.K.ReverseConj()}, nil
}

// InvertZ rebuilds the discrete-time transfer function of an expansion
// produced by [ResidueZ]. Common factors are cancelled and the result is
// scaled so that A[0] = 1.
func InvertZ(rpk lti.Rpk) (lti.Tf, error) {
	terms, err := invertTerms(rpk)
	if err != nil {
		return lti.Tf{}, err
	}

	w := Invert(lti.Rpk{Terms: terms, K: rpk.K.ReverseConj()})

	w, err = w.Simplify(lti.DefaultCancelTol)
	if err != nil {
		return lti.Tf{}, fmt.Errorf("residue: simplify: %w", err)
	}

	out := toInverse(w)
	if len(out.A) > 0 && out.A[0] != 0 {
		lead := out.A[0]
		out.B = out.B.Scale(1 / lead)
		out.A = out.A.Scale(1 / lead)
	}

	return out, nil
}

// toInverse reverses and conjugates both coefficient lists, switching
// between ascending powers of z^-1 and descending powers of w = z^-1.
func toInverse(tf lti.Tf) lti.Tf {
	return lti.Tf{B: tf.B.ReverseConj(), A: tf.A.ReverseConj()}
}

// invertTerms maps every pole p to q = 1/p and scales the j-th residue of
// each block by (-q)^j, since r/(w-p)^j = r(-q)^j/(1-q w)^j. Applying the
// map twice returns the input.
func invertTerms(rpk lti.Rpk) ([]lti.Term, error) {
	powers := rpk.Powers()
	out := make([]lti.Term, len(rpk.Terms))

	for i, t := range rpk.Terms {
		if t.Pole == 0 {
			return nil, ErrPoleAtInfinity
		}

		p := 1 / t.Pole
		r := t.Residue
		for range powers[i] {
			r *= -p
		}
		out[i] = lti.Term{Residue: r, Pole: p}
	}

	return out, nil
}
