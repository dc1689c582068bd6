package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <codec> <frame>",
		Short: "Check a received frame",
		Long: `Recompute the check over a received frame and report whether an error
was detected. The command exits with status 1 when it was.

Examples:
  errdetect verify checksum 100110100001110101001000
  errdetect verify lrc "10110111 10101011 11110100" --trace`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeCodecs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.codec(cmd, args[0])
			if err != nil {
				return err
			}
			valid, steps, err := c.Receive(args[1])
			if err != nil {
				return err
			}
			a.logger.Debug("verified",
				zap.String("codec", c.Name()),
				zap.Int("frame_bits", len(args[1])),
				zap.Bool("valid", valid))

			out := cmd.OutOrStdout()
			printTitle(out, c.Name()+" receiver")
			if showTrace, _ := cmd.Flags().GetBool("trace"); showTrace {
				printTrace(out, steps)
			}
			printVerdict(out, valid)
			if !valid {
				return errDetected
			}
			return nil
		},
	}
	addCodecFlags(cmd)
	return cmd
}
