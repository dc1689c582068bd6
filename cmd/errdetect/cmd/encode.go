package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yyyoichi/errdetect/strmark"
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <codec> <payload>",
		Short: "Compute the frame a sender transmits",
		Long: `Compute the check value of a payload and print the transmitted frame.

Codecs: parity, checksum, lrc, crc.

Examples:
  errdetect encode checksum 1001101000011101
  errdetect encode crc 1101011011 --polynomial 10011 --trace
  errdetect encode parity OK --text --parity odd`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeCodecs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.codec(cmd, args[0])
			if err != nil {
				return err
			}
			payload := args[1]
			if text, _ := cmd.Flags().GetBool("text"); text {
				payload = strmark.Encode(payload)
			}
			frame, steps, err := c.Send(payload)
			if err != nil {
				return err
			}
			a.logger.Debug("encoded",
				zap.String("codec", c.Name()),
				zap.Int("payload_bits", len(payload)),
				zap.Int("frame_bits", len(frame)))

			out := cmd.OutOrStdout()
			printTitle(out, c.Name()+" sender")
			if showTrace, _ := cmd.Flags().GetBool("trace"); showTrace {
				printTrace(out, steps)
			}
			printField(out, "Payload", payload)
			printField(out, "Frame", frame)
			if hex, _ := cmd.Flags().GetBool("hex"); hex {
				printField(out, "Hex", hexFrame(frame))
			}
			return nil
		},
	}
	addCodecFlags(cmd)
	cmd.Flags().Bool("text", false, "treat the payload as text and encode its bytes")
	cmd.Flags().Bool("hex", false, "also print the frame in hexadecimal")
	return cmd
}
