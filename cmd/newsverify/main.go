package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"newsverify/internal/config"
	"newsverify/internal/logger"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "newsverify",
		Short: "Headline truthfulness classifier",
		Long: `newsverify classifies news headlines on the six-step LIAR truthfulness
scale (pants-fire to true), falling back to a binary fake/real model when
the six-class bundle is unavailable.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	root.PersistentFlags().String("log-format", "", "log format (json, console); overrides LOG_FORMAT")
	root.PersistentFlags().String("model-dir", "", "six-class model bundle directory; overrides MODEL_DIR")
	root.PersistentFlags().String("binary-model-dir", "", "binary model bundle directory; overrides BINARY_MODEL_DIR")

	root.AddCommand(serveCmd())
	root.AddCommand(predictCmd())
	root.AddCommand(migrateCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	overrideString(cmd, "log-level", &cfg.LogLevel)
	overrideString(cmd, "log-format", &cfg.LogFormat)
	overrideString(cmd, "model-dir", &cfg.ModelDir)
	overrideString(cmd, "binary-model-dir", &cfg.BinaryModelDir)
	return cfg
}

func overrideString(cmd *cobra.Command, flag string, dst *string) {
	if !cmd.Flags().Changed(flag) {
		return
	}
	if v, err := cmd.Flags().GetString(flag); err == nil {
		*dst = v
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
}
