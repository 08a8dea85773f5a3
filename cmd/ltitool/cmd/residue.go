package cmd

import (
	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/dsp/lti/residue"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

func (a *app) residueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "residue <file>",
		Short: "Partial-fraction expansion of a system",
		Long: `Expands the system in <file> into residues, poles and a direct
polynomial. Systems with domain "z" are expanded in powers of z^-1.

Examples:
  ltitool residue lowpass.yaml
  ltitool residue --tolerance 1e-6 -o json system.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			return a.expand(cmd, doc, doc.Domain)
		},
	}
}

func (a *app) residuezCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "residuez <file>",
		Short: "Partial-fraction expansion in powers of z^-1",
		Long: `Reads the transfer function of <file> as ascending powers of z^-1 and
expands it into terms r/(1 - p z^-1)^k plus direct terms, whatever domain
the file declares.

Coefficients are reversed and conjugated before the expansion. For complex
coefficients the terms therefore describe the conjugate system
conj(H(conj z)), and its poles are the conjugates of the true poles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			return a.expand(cmd, doc, sysfile.DomainZ)
		},
	}
}

func (a *app) expand(cmd *cobra.Command, doc sysfile.Document, domain sysfile.Domain) error {
	if doc.Kind == sysfile.KindRpk && doc.Domain == domain {
		return a.write(cmd, doc)
	}

	tf, err := doc.Tf()
	if err != nil {
		return err
	}

	var rpk lti.Rpk
	if domain == sysfile.DomainZ {
		if !tf.IsReal(0) {
			a.log.Info("complex coefficients: terms expand the conjugate system conj(H(conj z))")
		}
		rpk, err = residue.ResidueZ(tf, a.residueOptions()...)
	} else {
		rpk, err = residue.Residue(tf, a.residueOptions()...)
	}
	if err != nil {
		return err
	}

	a.log.V(1).Info("expanded system", "terms", len(rpk.Terms), "direct", len(rpk.K))
	return a.write(cmd, sysfile.FromRpk(rpk, domain))
}
