// Package analog transforms analog prototype filters given in
// zero-pole-gain form.
//
// [SFTrans] maps a normalized lowpass prototype (cutoff 1 rad/s) onto a
// lowpass, highpass, bandpass or bandstop target. [Bilinear] maps an analog
// system to the z-plane. [ButterworthPrototype] and [Butter] combine both
// into a complete Butterworth designer.
//
// Frequencies passed to this package are angular frequencies in rad/s,
// except for [Butter] with [WithSampleRate], which takes Hz.
package analog
