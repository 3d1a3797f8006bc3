package cli

import (
	"fmt"
	"strings"

	"github.com/harun/plotpipe/pkg/numeric"
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/spf13/cobra"
)

var (
	funcFigure figureFlags
	funcLow    float64
	funcHigh   float64
	funcStep   float64
	funcList   bool
)

var funcCmd = &cobra.Command{
	Use:   "func <name>...",
	Short: "Plot builtin functions over a range",
	Long: `Sample builtin functions over [low, high) with the given step and plot
them as overlaid series. The upper bound is excluded. Use --list to see the
available functions.`,
	Example: `  plotpipe func sin cos --low 0 --high 6.3 --step 0.05
  plotpipe func --list`,
	RunE: runFunc,
}

func init() {
	funcFigure.register(funcCmd)
	funcCmd.Flags().Float64Var(&funcLow, "low", -10, "first sample")
	funcCmd.Flags().Float64Var(&funcHigh, "high", 10, "upper bound (excluded)")
	funcCmd.Flags().Float64Var(&funcStep, "step", 0.1, "distance between samples")
	funcCmd.Flags().BoolVar(&funcList, "list", false, "list builtin functions and exit")
	rootCmd.AddCommand(funcCmd)
}

func runFunc(cmd *cobra.Command, args []string) error {
	if funcList {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(numeric.BuiltinNames(), "\n"))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("no function named (available: %s)", strings.Join(numeric.BuiltinNames(), ", "))
	}

	fig := &plotspec.Figure{
		Functions: &plotspec.FunctionSet{
			Range: plotspec.Range{Low: funcLow, High: funcHigh, Step: funcStep},
		},
	}
	for _, name := range args {
		fig.Functions.Plots = append(fig.Functions.Plots, plotspec.FunctionRef{
			Name:  name,
			Style: funcFigure.style,
		})
	}
	funcFigure.apply(fig)

	return renderFigure(cmd, "func", fig)
}
