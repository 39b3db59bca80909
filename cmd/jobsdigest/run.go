package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vjdev/jobsdigest/internal/runlock"
	"github.com/vjdev/jobsdigest/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one digest cycle now",
	Long:  "Collect, curate and deliver a digest immediately, then exit. Useful from cron or for catching up after downtime.",
	RunE:  runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	release, acquired, err := runlock.Acquire(cfg.Lock.Path)
	if err != nil {
		logger.Error("failed to acquire instance lock", "error", err)
		os.Exit(1)
	}
	if !acquired {
		logger.Info("another instance is running, skipping", "lock", cfg.Lock.Path)
		return nil
	}
	defer func() { _ = release() }()

	creds, err := loadCredentials()
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	p, err := buildPipeline(cfg, creds, sqlStore, logger)
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Cycle(ctx); err != nil {
		logger.Error("digest cycle failed", "error", err)
		os.Exit(1)
	}
	logger.Info("digest cycle complete")
	return nil
}
