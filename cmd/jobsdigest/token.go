package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vjdev/jobsdigest/internal/secrets"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage channel tokens in the OS keyring",
	Long:  "Stores credentials like TELEGRAM_BOT_TOKEN in the system keyring so they don't have to live in env files. Environment variables still take precedence.",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("stored %s\n", args[0])
		return nil
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete KEY",
	Short: "Remove a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
}
