package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vjdev/jobsdigest/internal/preview"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Interactively enable or disable job sources",
	Long:  "Opens a toggle list of the configured job sources and writes the selection back to the config file.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	path := cfgPath
	if path == "" {
		if env := os.Getenv("JOBSDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := loadConfig(path)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	updated, save, err := preview.RunSourcePicker(cfg.Sources)
	if err != nil {
		return err
	}
	if !save {
		logger.Info("no changes saved")
		return nil
	}

	cfg.Sources = updated
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	logger.Info("sources updated", "config", path)
	return nil
}
