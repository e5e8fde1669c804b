package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartolab/venicemap/internal/choropleth"
	"github.com/cartolab/venicemap/internal/dataset"
)

var (
	summaryMode string
	summaryKey  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary [buildings|neighborhoods]",
	Short: "Print the aggregate summary for an active mode or key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := runAggregation(cmd, args[0], summaryMode, summaryKey)
		if err != nil {
			return err
		}

		fmt.Printf("attribute: %s\n", res.Attr)
		fmt.Printf("features:  %d (%d without data)\n", res.FeatureCount(), res.NoData)
		if text := res.Summary(); text != "" {
			fmt.Printf("total:     %s\n", text)
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryMode, "mode", string(choropleth.ModeListings), "building color mode")
	summaryCmd.Flags().StringVar(&summaryKey, "key", dataset.AttrListingsTotal, "neighborhood classification key")
	rootCmd.AddCommand(summaryCmd)
}
