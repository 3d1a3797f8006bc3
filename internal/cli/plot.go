package cli

import (
	"github.com/spf13/cobra"
)

var (
	plotFigure  figureFlags
	plotColumns string
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>...",
	Short: "Plot whitespace-separated data files",
	Long: `Plot one or more data files as overlaid series. Each file contributes the
two columns selected with --columns; blank lines and lines starting with #
are skipped. The legend title of each series is the file name.`,
	Example: `  plotpipe plot measurements.dat
  plotpipe plot --columns 1:3 --style points a.dat b.dat
  plotpipe plot --terminal "pngcairo size 800,600" --output out.png data.dat`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlot,
}

func init() {
	plotFigure.register(plotCmd)
	plotCmd.Flags().StringVar(&plotColumns, "columns", "1:2", "x:y columns to plot (1-based)")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	columns, err := parseColumns(plotColumns)
	if err != nil {
		return err
	}

	fig := dataFigure(args, columns, plotFigure.style)
	plotFigure.apply(fig)

	return renderFigure(cmd, "plot", fig)
}
