package biquad_test

import (
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/filter/biquad"
	"github.com/ZOwl/signal-processing/dsp/lti"
)

func ExampleFromSos() {
	// H(z) = z / (z - 0.5)
	zpk := lti.Zpk{Zeros: []complex128{0}, Poles: []complex128{0.5}, Gain: 1}

	sections, err := zpk.ToSos(lti.DefaultConjugateTol)
	if err != nil {
		fmt.Println(err)
		return
	}

	chain, err := biquad.FromSos(sections)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(chain.Impulse(5))

	// Output:
	// [1 0.5 0.25 0.125 0.0625]
}
