package cmd

import (
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/filter/analog"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

func (a *app) sftransCmd() *cobra.Command {
	var (
		freqs []float64
		stop  bool
	)

	cmd := &cobra.Command{
		Use:   "sftrans <file>",
		Short: "Map an analog lowpass prototype to a new band",
		Long: `Transforms the analog prototype in <file> (cutoff 1 rad/s).

One --freq gives a lowpass, or a highpass with --stop. Two --freq values
give a bandpass, or a bandstop with --stop. Frequencies are in rad/s.

Examples:
  ltitool sftrans --freq 2 prototype.yaml
  ltitool sftrans --freq 1 --freq 4 --stop prototype.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			if doc.Domain != sysfile.DomainS {
				return fmt.Errorf("sftrans needs an analog system, %s has domain %q", args[0], doc.Domain)
			}

			zpk, err := doc.Zpk()
			if err != nil {
				return err
			}

			out, err := analog.SFTrans(zpk, freqs, stop)
			if err != nil {
				return err
			}

			a.log.V(1).Info("transformed prototype", "freqs", freqs, "stop", stop,
				"zeros", len(out.Zeros), "poles", len(out.Poles))
			return a.write(cmd, sysfile.FromZpk(out, sysfile.DomainS))
		},
	}

	cmd.Flags().Float64SliceVar(&freqs, "freq", nil, "target frequency in rad/s (repeat for band edges)")
	cmd.Flags().BoolVar(&stop, "stop", false, "highpass or bandstop instead of lowpass or bandpass")
	_ = cmd.MarkFlagRequired("freq")

	return cmd
}
