package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cartolab/venicemap/internal/aggregate"
	"github.com/cartolab/venicemap/internal/choropleth"
	"github.com/cartolab/venicemap/internal/dataset"
	"github.com/cartolab/venicemap/internal/palette"
)

var (
	legendMode string
	legendKey  string
)

var legendCmd = &cobra.Command{
	Use:   "legend [buildings|neighborhoods]",
	Short: "Print the legend rows for an active mode or key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, pal, err := runAggregation(cmd, args[0], legendMode, legendKey)
		if err != nil {
			return err
		}

		for _, row := range aggregate.Legend(res, pal) {
			fmt.Printf("%s  %-24s %d\n", row.Swatch, row.Label, row.Count)
		}
		return nil
	},
}

// runAggregation loads the datasets and aggregates the requested one.
// Shared by the legend and summary commands.
func runAggregation(cmd *cobra.Command, arg, mode, key string) (aggregate.Result, []palette.Color, error) {
	kind := dataset.Kind(arg)
	if kind != dataset.Buildings && kind != dataset.Neighborhoods {
		return aggregate.Result{}, nil, eris.Errorf("unknown dataset %q", arg)
	}

	env := loadDatasets(cmd.Context())
	col := env.collection(kind)
	if col == nil {
		return aggregate.Result{}, nil, eris.Errorf("%s dataset unavailable", kind)
	}

	if kind == dataset.Buildings {
		m := choropleth.Mode(mode)
		if !m.Valid() {
			return aggregate.Result{}, nil, eris.Errorf("unknown mode %q", mode)
		}
		res := aggregate.Buildings(col, m, env.store)
		return res, palette.MustGenerate(m.Recipe(), palette.Size), nil
	}

	recipe, ok := choropleth.NeighborhoodRecipes[key]
	if !ok {
		return aggregate.Result{}, nil, eris.Errorf("unknown neighborhood key %q", key)
	}
	res := aggregate.Neighborhoods(col, key, env.store)
	return res, palette.MustGenerate(recipe, palette.Size), nil
}

func init() {
	legendCmd.Flags().StringVar(&legendMode, "mode", string(choropleth.ModeListings), "building color mode")
	legendCmd.Flags().StringVar(&legendKey, "key", dataset.AttrListingsTotal, "neighborhood classification key")
	rootCmd.AddCommand(legendCmd)
}
