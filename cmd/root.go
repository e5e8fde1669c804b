package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cartolab/venicemap/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "venicemap",
	Short: "Choropleth engine for the Venice Airbnb map dashboard",
	Long:  "Loads the Venice building and neighborhood datasets, computes natural-breaks classifications and color ramps, and serves per-feature render styles, legends and aggregate summaries to the map client.",
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
