package cmd

import (
	"fmt"

	"github.com/ZOwl/signal-processing/dsp/filter/analog"
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

func (a *app) butterCmd() *cobra.Command {
	var freqs []float64

	cmd := &cobra.Command{
		Use:   "butter",
		Short: "Design a Butterworth filter",
		Long: `Designs a Butterworth filter from the analog prototype.

Without --fs the filter is analog and --freq is in rad/s. With --fs the
filter is digital, --freq is in Hz and the result has domain "z".

Examples:
  ltitool butter --order 4 --freq 1000 --fs 48000
  ltitool butter --order 2 --type bandstop --freq 50 --freq 60 --fs 1000 --form sos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := analog.ParseKind(a.v.GetString("type"))
			if err != nil {
				return err
			}

			var opts []analog.DesignOption
			domain := sysfile.DomainS
			if fs := a.v.GetFloat64("fs"); fs > 0 {
				opts = append(opts, analog.WithSampleRate(fs))
				domain = sysfile.DomainZ
			}

			zpk, err := analog.Butter(a.v.GetInt("order"), freqs, kind, opts...)
			if err != nil {
				return err
			}
			a.log.V(1).Info("designed filter", "kind", kind, "order", a.v.GetInt("order"), "domain", domain)

			doc := sysfile.FromZpk(zpk, domain)
			switch form := a.v.GetString("form"); form {
			case "zpk":
				return a.write(cmd, doc)
			case "tf":
				tf, err := doc.Tf()
				if err != nil {
					return err
				}
				return a.write(cmd, sysfile.FromTf(tf, domain))
			case "sos":
				sections, err := zpk.ToSos(lti.DefaultConjugateTol)
				if err != nil {
					return err
				}
				return printSections(cmd.OutOrStdout(), sections)
			default:
				return fmt.Errorf("unknown form %q (want zpk, tf or sos)", form)
			}
		},
	}

	flags := cmd.Flags()
	flags.Int("order", 4, "filter order")
	flags.Float64SliceVar(&freqs, "freq", nil, "cutoff frequency (repeat for band edges)")
	flags.String("type", "lowpass", "lowpass, highpass, bandpass or bandstop")
	flags.Float64("fs", 0, "sample rate in Hz for a digital design")
	flags.String("form", "zpk", "result form: zpk, tf or sos")
	_ = cmd.MarkFlagRequired("freq")

	return cmd
}
