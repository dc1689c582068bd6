package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yyyoichi/errdetect/crc"
)

func newDivideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "divide <dividend> <divisor>",
		Short: "Binary long division using XOR",
		Long: `Divide two bit strings over GF(2) and print every XOR step.

Example:
  errdetect divide 11010110110000 10011`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := crc.XORDivide(args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTitle(out, "XOR division")
			printTrace(out, d.Trace)
			printField(out, "Steps", d.Steps)
			printField(out, "Remainder", d.Remainder)
			return nil
		},
	}
}
