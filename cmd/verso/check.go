package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verso-ui/verso/internal/config"
)

func checkCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate verso.json",
		Long:  `Load and validate the project's verso.json, printing the effective configuration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load(".")
			}
			if err != nil {
				return err
			}

			success("%s is valid", cfg.Path())
			fmt.Println()
			info("Name:       %s", cfg.Name)
			info("Base URL:   %s", cfg.BaseURL)
			info("Listen:     %s:%d", cfg.Server.Host, cfg.Server.Port)
			info("Sessions:   max %d, idle timeout %s", cfg.Sessions.Max, cfg.IdleTimeout())
			if cfg.Metrics.Enabled {
				info("Metrics:    namespace %q", cfg.Metrics.Namespace)
			} else {
				info("Metrics:    disabled")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to verso.json")

	return cmd
}
