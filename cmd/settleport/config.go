package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poweradmin/settleport/internal/config"
)

var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settleport configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Defaults()

		if configGlobal {
			if err := config.WriteGlobal(&cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.GlobalPath())
			return nil
		}

		if err := config.WriteProject(&cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.ProjectPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_file: %s\n", cfg.LogFile)
		fmt.Fprintf(out, "default_state: %s\n", cfg.DefaultState)
		fmt.Fprintf(out, "allow_paste_on_confirm: %t\n", cfg.AllowPasteOnConfirm)
		fmt.Fprintf(out, "require_full_scroll_read: %t\n", cfg.RequireFullScrollRead)
		fmt.Fprintf(out, "verify_delay_ms: %d\n", cfg.VerifyDelayMs)
		fmt.Fprintf(out, "submit_delay_ms: %d\n", cfg.SubmitDelayMs)
		fmt.Fprintf(out, "submit_timeout_ms: %d\n", cfg.SubmitTimeoutMs)
		fmt.Fprintf(out, "receipt_dir: %s\n", cfg.ReceiptDir)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configGlobal, "global", false,
		"write to the global config instead of the project directory")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
