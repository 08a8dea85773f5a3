package analog

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

var (
	// ErrZeroOrder is returned for a filter order below one.
	ErrZeroOrder = errors.New("analog: filter order must be at least 1")
	// ErrFrequencyOrder is returned when band edges are not ascending.
	ErrFrequencyOrder = errors.New("analog: band edges must be ascending")
	// ErrFrequencyRange is returned for a cutoff outside (0, fs/2), or a
	// non-positive analog cutoff.
	ErrFrequencyRange = errors.New("analog: cutoff frequency out of range")
	// ErrUnknownKind is returned by [ParseKind] for an unrecognized name.
	ErrUnknownKind = errors.New("analog: unknown filter kind")
)

// Kind selects the response of a designed filter.
type Kind int

// Filter kinds.
const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
	KindBandstop
)

func (k Kind) String() string {
	switch k {
	case KindLowpass:
		return "lowpass"
	case KindHighpass:
		return "highpass"
	case KindBandpass:
		return "bandpass"
	case KindBandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name. Short forms "low", "high", "pass" and
// "stop" are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "low":
		return KindLowpass, nil
	case "highpass", "high":
		return KindHighpass, nil
	case "bandpass", "pass":
		return KindBandpass, nil
	case "bandstop", "stop":
		return KindBandstop, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) isBand() bool { return k == KindBandpass || k == KindBandstop }

func (k Kind) isStop() bool { return k == KindHighpass || k == KindBandstop }

// DesignConfig holds optional designer settings.
type DesignConfig struct {
	// SampleRate in Hz. Zero designs an analog filter.
	SampleRate float64
}

// DesignOption mutates a DesignConfig.
type DesignOption func(*DesignConfig)

// WithSampleRate designs a digital filter for the given sample rate. The
// cutoff frequencies are then given in Hz and prewarped before the bilinear
// transform.
func WithSampleRate(sampleRate float64) DesignOption {
	return func(cfg *DesignConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ButterworthPrototype returns the order-n Butterworth lowpass prototype
// with unit cutoff: n poles evenly spaced on the left half of the unit
// circle, no zeros and unit gain.
func ButterworthPrototype(n int) (lti.Zpk, error) {
	if n < 1 {
		return lti.Zpk{}, ErrZeroOrder
	}

	poles := make([]complex128, n)
	for k := 1; k <= n; k++ {
		theta := math.Pi * float64(2*k+n-1) / float64(2*n)
		poles[k-1] = cmplx.Exp(complex(0, theta))
	}
	if n%2 == 1 {
		poles[(n-1)/2] = -1
	}

	return lti.Zpk{Poles: poles, Gain: 1}, nil
}

// Butter designs a Butterworth filter of the given order. Lowpass and
// highpass kinds take one cutoff, band kinds take the two band edges.
// Without [WithSampleRate] the result is analog and freqs are in rad/s.
func Butter(order int, freqs []float64, kind Kind, opts ...DesignOption) (lti.Zpk, error) {
	var cfg DesignConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if kind < KindLowpass || kind > KindBandstop {
		return lti.Zpk{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	want := 1
	if kind.isBand() {
		want = 2
	}
	if len(freqs) != want {
		return lti.Zpk{}, fmt.Errorf("analog: %v needs %d frequencies, got %d: %w",
			kind, want, len(freqs), ErrInvalidFrequencies)
	}
	if want == 2 && freqs[0] > freqs[1] {
		return lti.Zpk{}, ErrFrequencyOrder
	}

	w := make([]float64, len(freqs))
	for i, f := range freqs {
		if math.IsNaN(f) || f <= 0 || math.IsInf(f, 0) {
			return lti.Zpk{}, fmt.Errorf("analog: cutoff %g: %w", f, ErrFrequencyRange)
		}
		w[i] = f

		if cfg.SampleRate > 0 {
			if f >= cfg.SampleRate/2 {
				return lti.Zpk{}, fmt.Errorf("analog: cutoff %g Hz at fs %g Hz: %w", f, cfg.SampleRate, ErrFrequencyRange)
			}
			w[i] = 2 * cfg.SampleRate * math.Tan(math.Pi*f/cfg.SampleRate)
		}
	}

	proto, err := ButterworthPrototype(order)
	if err != nil {
		return lti.Zpk{}, err
	}

	zpk, err := SFTrans(proto, w, kind.isStop())
	if err != nil {
		return lti.Zpk{}, err
	}

	if cfg.SampleRate > 0 {
		return Bilinear(zpk, 1/cfg.SampleRate)
	}
	return zpk, nil
}
