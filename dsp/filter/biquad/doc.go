// Package biquad runs discrete systems as cascades of second-order
// sections.
//
// A [Section] implements Direct Form II Transposed processing for one
// section defined by [Coefficients]. [FromSos] builds a [Chain] from the
// sections produced by [lti.Zpk.ToSos], so any discrete zero-pole-gain
// system (for example a digital Butterworth design) can be applied to a
// signal or inspected through its impulse response.
package biquad
