package cmd

import (
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

func (a *app) tfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tf <file>",
		Short: "Print a system as a transfer function",
		Long: `Converts the system in <file> to a transfer function. Residue
expansions are rebuilt into B/A.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			tf, err := doc.Tf()
			if err != nil {
				return err
			}
			return a.write(cmd, sysfile.FromTf(tf, doc.Domain))
		},
	}
}

func (a *app) zpkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zpk <file>",
		Short: "Print a system in zero-pole-gain form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}
			zpk, err := doc.Zpk()
			if err != nil {
				return err
			}
			return a.write(cmd, sysfile.FromZpk(zpk, doc.Domain))
		},
	}
}
