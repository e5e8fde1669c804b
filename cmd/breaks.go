package main

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cartolab/venicemap/internal/dataset"
)

var breaksCmd = &cobra.Command{
	Use:   "breaks [buildings|neighborhoods]",
	Short: "Print the computed classification breaks for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := dataset.Kind(args[0])
		if kind != dataset.Buildings && kind != dataset.Neighborhoods {
			return eris.Errorf("unknown dataset %q", args[0])
		}

		env := loadDatasets(cmd.Context())
		if env.collection(kind) == nil {
			return eris.Errorf("%s dataset unavailable", kind)
		}

		attrs := env.store.Attrs(string(kind))
		sort.Strings(attrs)
		for _, attr := range attrs {
			breaks := env.store.Breaks(string(kind), attr)
			if len(breaks) < 2 {
				fmt.Printf("%-32s (no classification possible)\n", attr)
				continue
			}
			fmt.Printf("%-32s", attr)
			for _, b := range breaks {
				fmt.Printf(" %.2f", b)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(breaksCmd) }
