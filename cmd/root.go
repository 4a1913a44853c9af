package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/constructai/estimator-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "estimator-cli",
	Short: "Construction document analysis and cost estimation",
	Long:  "Runs domain analysis plugins (architectural, structural, MEP, cost) over construction document text, extracting structured line items and normalizing them into cost estimates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
