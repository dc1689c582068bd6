package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/config"
)

func addCodecFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("block-size", "b", 0, "block size in bits for parity, checksum and lrc (default from config)")
	cmd.Flags().StringP("parity", "p", "", "parity kind: even or odd (default from config)")
	cmd.Flags().StringP("polynomial", "g", "", "CRC generator polynomial (default from config)")
	cmd.Flags().BoolP("trace", "t", false, "print every calculation step")
}

// codec builds the named codec from the config overridden by the command's
// flags.
func (a *app) codec(cmd *cobra.Command, name string) (errdetect.Codec, error) {
	cfg := *a.cfg
	fl := cmd.Flags()
	if fl.Changed("block-size") {
		n, _ := fl.GetInt("block-size")
		cfg.Parity.BlockSize, cfg.Checksum.BlockSize, cfg.LRC.BlockSize = n, n, n
	}
	if fl.Changed("parity") {
		cfg.Parity.Kind, _ = fl.GetString("parity")
	}
	if fl.Changed("polynomial") {
		cfg.CRC.Polynomial, _ = fl.GetString("polynomial")
	}
	return cfg.Codec(name)
}

func completeCodecs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Names, cobra.ShellCompDirectiveNoFileComp
}
