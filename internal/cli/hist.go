package cli

import (
	"path/filepath"

	"github.com/harun/plotpipe/pkg/numeric"
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/spf13/cobra"
)

var (
	histFigure         figureFlags
	histColumn         int
	histBins           int
	histHistogramStyle string
	histBarStyle       string
)

var histCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Draw a histogram of one data column",
	Long: `Count the values of one data file column into equal-width bins and draw
the counts as a bar chart labelled with the bin centers.`,
	Example: `  plotpipe hist --bins 20 latencies.dat
  plotpipe hist --column 2 --bar-style "fill pattern 2" samples.dat`,
	Args: cobra.ExactArgs(1),
	RunE: runHist,
}

func init() {
	histFigure.register(histCmd)
	histCmd.Flags().IntVar(&histColumn, "column", 1, "column to bin (1-based)")
	histCmd.Flags().IntVar(&histBins, "bins", 10, "number of bins")
	histCmd.Flags().StringVar(&histHistogramStyle, "histogram-style", "", `"set style histogram" argument (default "cluster gap 1")`)
	histCmd.Flags().StringVar(&histBarStyle, "bar-style", "", `bar style (default "fill solid border -1")`)
	rootCmd.AddCommand(histCmd)
}

func runHist(cmd *cobra.Command, args []string) error {
	values, err := plotspec.ReadColumnFile(args[0], histColumn)
	if err != nil {
		return err
	}

	bins, err := numeric.Bin(values, histBins)
	if err != nil {
		return err
	}

	fig := &plotspec.Figure{
		Histogram: &plotspec.Histogram{
			HistogramStyle: histHistogramStyle,
			BarStyle:       histBarStyle,
			Labels:         bins.Centers(),
			Clusters: []plotspec.Cluster{
				{Title: filepath.Base(args[0]), Values: bins.Values()},
			},
		},
	}
	histFigure.apply(fig)

	return renderFigure(cmd, "hist", fig)
}
