package biquad

import (
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/lti"
)

// Chain is an ordered cascade of biquad sections processed in series.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from one or more coefficient sets.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// FromSos creates a cascade from second-order sections. The system gain is
// expected inside the sections, as [lti.Zpk.ToSos] places it.
func FromSos(sections []lti.Section, opts ...ChainOption) (*Chain, error) {
	coeffs := make([]Coefficients, len(sections))
	for i, s := range sections {
		c, err := FromSection(s)
		if err != nil {
			return nil, fmt.Errorf("biquad: section %d: %w", i, err)
		}
		coeffs[i] = c
	}
	return NewChain(coeffs, opts...), nil
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Impulse resets the chain and returns the first n samples of its impulse
// response. The chain is left in its post-impulse state.
func (c *Chain) Impulse(n int) []float64 {
	c.Reset()
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = 1
	c.ProcessBlock(out)
	return out
}

// Step resets the chain and returns the first n samples of its step
// response.
func (c *Chain) Step(n int) []float64 {
	c.Reset()
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = c.ProcessSample(1)
	}
	return out
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}
