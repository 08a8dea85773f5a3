// Package lti represents linear time-invariant systems in transfer-function
// (Tf), zero-pole-gain (Zpk) and residue-pole-remainder (Rpk) form.
//
// Polynomials use the highest-degree-first convention of package poly.
// Continuous-time systems are polynomials in s. For discrete-time systems
// the coefficient slices are read as ascending powers of z^-1, which matches
// the numerator and denominator vectors of a direct-form IIR filter; the
// EvalZ methods and package residue's z-domain functions follow that
// convention.
//
// Partial-fraction decomposition lives in the residue sub-package; the
// analog frequency transforms live in dsp/filter/analog.
package lti
