package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/spf13/cobra"
)

const formatTable = "table"

// write prints doc in the configured output format.
func (a *app) write(cmd *cobra.Command, doc sysfile.Document) error {
	format := strings.ToLower(a.v.GetString("output"))
	if format == formatTable {
		return printTable(cmd.OutOrStdout(), doc)
	}
	return sysfile.Encode(cmd.OutOrStdout(), sysfile.Format(format), doc)
}

func printTable(w io.Writer, doc sysfile.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "kind\t%s\n", doc.Kind)
	fmt.Fprintf(tw, "domain\t%s\n", doc.Domain)

	switch doc.Kind {
	case sysfile.KindTf:
		fmt.Fprintf(tw, "b\t%s\n", joinValues(doc.B))
		fmt.Fprintf(tw, "a\t%s\n", joinValues(doc.A))
	case sysfile.KindZpk:
		fmt.Fprintf(tw, "zeros\t%s\n", joinValues(doc.Zeros))
		fmt.Fprintf(tw, "poles\t%s\n", joinValues(doc.Poles))
		if doc.Gain != nil {
			fmt.Fprintf(tw, "gain\t%s\n", formatComplex(complex128(*doc.Gain)))
		}
	case sysfile.KindRpk:
		rpk, err := doc.Rpk()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "\nPole\tPower\tResidue\n")
		fmt.Fprintf(tw, "----\t-----\t-------\n")
		for i, k := range rpk.Powers() {
			t := rpk.Terms[i]
			fmt.Fprintf(tw, "%s\t%d\t%s\n", formatComplex(t.Pole), k, formatComplex(t.Residue))
		}
		fmt.Fprintf(tw, "\nk\t%s\n", joinValues(doc.K))
	}

	return tw.Flush()
}

func printSections(w io.Writer, sections []lti.Section) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Section\tb0\tb1\tb2\ta0\ta1\ta2\n")
	fmt.Fprintf(tw, "-------\t--\t--\t--\t--\t--\t--\n")
	for i, s := range sections {
		fmt.Fprintf(tw, "%d\t%.10g\t%.10g\t%.10g\t%.10g\t%.10g\t%.10g\n",
			i, s.B[0], s.B[1], s.B[2], s.A[0], s.A[1], s.A[2])
	}
	return tw.Flush()
}

func joinValues(v []sysfile.Value) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = formatComplex(complex128(x))
	}
	return strings.Join(parts, " ")
}

func formatComplex(c complex128) string {
	if imag(c) == 0 {
		return fmt.Sprintf("%.6g", real(c))
	}
	return fmt.Sprintf("%.6g%+.6gj", real(c), imag(c))
}
