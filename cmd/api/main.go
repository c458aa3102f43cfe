package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"provenance/internal/app/bootstrap"
	"provenance/internal/platform/config"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const programName = "provenance-api"

var (
	configFile string
	debug      bool
)

// API process entrypoint.
// Data flow:
// 1) Load config (file, then PROVENANCE_* environment).
// 2) Build the ledger over the configured storage.
// 3) Serve HTTP until SIGINT/SIGTERM.
func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Serve the asset provenance ledger over HTTP",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := bootstrap.BuildAPI(cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap api: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("api shutdown close failed", "component", programName, "error", err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: debug,
		Level:     level,
	}))
	slog.SetDefault(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...), "component", programName)
	})); err != nil {
		logger.Warn("set GOMAXPROCS failed", "component", programName, "error", err.Error())
	}
	return logger
}
