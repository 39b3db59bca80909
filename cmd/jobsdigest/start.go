package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vjdev/jobsdigest/internal/config"
	"github.com/vjdev/jobsdigest/internal/runlock"
	"github.com/vjdev/jobsdigest/internal/scheduler"
	"github.com/vjdev/jobsdigest/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daily digest daemon",
	Long:  "Start the scheduler daemon; posts the digest at the configured UTC time every day. Blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
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
		// Another instance owns the schedule; nothing to do here.
		logger.Info("another instance is running, exiting", "lock", cfg.Lock.Path)
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

	hour, minute, err := config.ParseRunTime(cfg.RunTimeUTC)
	if err != nil {
		logger.Error("bad run time", "error", err)
		os.Exit(1)
	}
	logger.Info("daemon started", "run_time_utc", cfg.RunTimeUTC, "channels", cfg.Delivery.Channels)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(hour, minute, logger)
	if err := sched.Run(ctx, p.Cycle); err != nil && ctx.Err() == nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
