package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rpimon-api/api"
	"rpimon-api/collector"
	"rpimon-api/config"
	"rpimon-api/logging"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		listenAddr string
		logLevel   string
		procRoot   string
		timeout    time.Duration
	)

	rootCmd := &cobra.Command{
		Use:           "rpimon-api",
		Short:         "Host metrics HTTP API",
		Long:          `Serves CPU load, memory, disk and network statistics of a Linux host over HTTP.`,
		Version:       fmt.Sprintf("%s (%s) built on %s", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags win over every other source
			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.ListenAddr = listenAddr
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("proc-root") {
				cfg.ProcRoot = procRoot
			}
			if flags.Changed("timeout") {
				cfg.CollectTimeout = timeout
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return run(cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&listenAddr, "listen", "", "Address to listen on (default :8000)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&procRoot, "proc-root", "", "Directory holding the proc filesystem, for containers mounting the host's /proc elsewhere")
	flags.DurationVar(&timeout, "timeout", 0, "Deadline for one collection pass (default 5s)")

	return rootCmd
}

func run(cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting rpimon-api",
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("date", date),
	)
	if !cfg.EnvFileLoaded {
		logger.Debug("no .env file found, using environment variables")
	}
	logger.Info("config",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("proc_root", cfg.ProcRoot),
		zap.Duration("collect_timeout", cfg.CollectTimeout),
		zap.String("default_unit", cfg.DefaultUnit),
	)

	proc := collector.NewProcReader(cfg.ProcRoot, logger)
	runner := collector.NewExecCmdRunner(logger)
	collector.DetectCapabilities(proc, runner, logger)

	c := collector.NewCollector(
		proc,
		collector.NewCommands(runner, logger),
		collector.NewMountTable(),
		collector.NewHostInspector(),
		logger,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.NewServer(cfg, c, logger).Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}

	logger.Info("shut down")
	return nil
}
