package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ZOwl/signal-processing/dsp/filter/biquad"
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

func (a *app) impulseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impulse <file>",
		Short: "Impulse response of a discrete system",
		Long: `Runs a unit impulse through the discrete system in <file>, factored into
second-order sections, or a unit step with --step. Supports table and json
output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			if doc.Domain != sysfile.DomainZ {
				return fmt.Errorf("impulse needs a discrete system, %s has domain %q", args[0], doc.Domain)
			}

			zpk, err := doc.Zpk()
			if err != nil {
				return err
			}

			sections, err := zpk.ToSos(lti.DefaultConjugateTol)
			if err != nil {
				return err
			}

			chain, err := biquad.FromSos(sections)
			if err != nil {
				return err
			}
			a.log.V(1).Info("built section cascade", "sections", chain.NumSections())
			for i := range chain.NumSections() {
				c := chain.Section(i).Coefficients
				a.log.V(1).Info("section", "index", i,
					"b", []float64{c.B0, c.B1, c.B2}, "a", []float64{1, c.A1, c.A2})
			}

			n := a.v.GetInt("samples")
			if a.v.GetBool("step") {
				return a.writeSamples(cmd, chain.Step(n))
			}
			return a.writeSamples(cmd, chain.Impulse(n))
		},
	}

	cmd.Flags().Int("samples", 32, "number of output samples")
	cmd.Flags().Bool("step", false, "print the step response instead")

	return cmd
}

func (a *app) writeSamples(cmd *cobra.Command, h []float64) error {
	switch format := strings.ToLower(a.v.GetString("output")); format {
	case formatTable:
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "n\th[n]\n")
		fmt.Fprintf(tw, "-\t----\n")
		for n, v := range h {
			fmt.Fprintf(tw, "%d\t%.10g\n", n, v)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(h)
	default:
		return fmt.Errorf("impulse does not support output format %q", format)
	}
}
