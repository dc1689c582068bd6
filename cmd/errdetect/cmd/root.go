package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/config"
	"github.com/yyyoichi/errdetect/internal/quality"
)

// errDetected is returned by verify when the check fails, so the process
// exits non-zero.
var errDetected = errors.New("error detected")

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	newLogger func(level string) (*zap.Logger, error)
}

func newApp() *app {
	return &app{newLogger: newLogger}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "errdetect",
		Short: "Parity, checksum, LRC and CRC calculator",
		Long: `errdetect computes the classic data-link error detection codes and
shows every step of the calculation.

The sender side appends a check value to a bit string, the receiver side
recomputes it over a received frame and reports whether an error was detected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newEncodeCmd(a),
		newVerifyCmd(a),
		newDivideCmd(a),
		newQualityCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	if err := run(ctx, newRootCmd(a), a); err != nil {
		if !errors.Is(err, errDetected) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}

// run executes root and flushes the logger whether or not the command failed.
func run(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}

	logger, err := a.newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	quality.SetLogger(logger.Named("quality"))
	logger.Debug("config loaded", zap.String("path", path), zap.String("command", cmd.Name()))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", errdetect.ErrInvalidConfig, level)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
