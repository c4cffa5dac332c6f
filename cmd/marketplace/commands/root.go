package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/marketplace-system/internal/infrastructure/config"
	"github.com/99minutos/marketplace-system/pkg/logger"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logPretty  bool
)

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Online marketplace: account and catalog stores plus buyer and seller frontends",
	Long: `marketplace runs one of the four marketplace processes, sends single
requests to a running process, or benchmarks the frontends.

Configuration comes from the environment (CUSTOMER_DB_ADDR, SNAPSHOT_BACKEND,
SESSION_TIMEOUT, ...), optionally layered over a YAML file given with --config.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (environment wins over file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable console logs")
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context, service string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || logPretty,
		Output:  os.Stderr,
		Service: service,
	})
	return cfg, log, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
