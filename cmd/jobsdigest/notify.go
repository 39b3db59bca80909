package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test message to every configured channel",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	creds, err := loadCredentials()
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	channels, _, err := buildChannels(cfg, creds, newFetchClient(cfg), logger)
	if err != nil {
		logger.Error("failed to build channels", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	msg := fmt.Sprintf("✅ jobsdigest test message (%s)", time.Now().UTC().Format("02 Jan 2006 15:04 UTC"))
	failed := false
	for _, ch := range channels {
		if err := ch.Sender.Send(ctx, msg); err != nil {
			logger.Error("test message failed", "channel", ch.Sender.Name(), "error", err)
			failed = true
			continue
		}
		logger.Info("test message sent", "channel", ch.Sender.Name())
	}
	if failed {
		os.Exit(1)
	}
	return nil
}
