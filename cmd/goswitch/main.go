package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/goswitch/internal/pipeline"
)

var (
	version = "dev"

	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goswitch",
	Short: "Generate exhaustive Match and Switch functions for Go unions",
	Long: `goswitch generates exhaustive dispatch functions for sealed interfaces and
enum-like constant types. Typical use from a package directory:

  //go:generate go run github.com/reoring/goswitch/cmd/goswitch generate --type Shape`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			config.Encoding = "console"
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate dispatch files once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config()
		if err != nil {
			return err
		}
		_, err = pipeline.Run(cmd.Context(), cfg, logger)
		return err
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate dispatch files whenever sources or schemas change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.config()
		if err != nil {
			return err
		}
		return pipeline.Watch(cmd.Context(), cfg, logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the goswitch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "goswitch", version)
	},
}

var opts options

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	for _, c := range []*cobra.Command{generateCmd, watchCmd} {
		opts.register(c)
	}
	rootCmd.AddCommand(generateCmd, watchCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
