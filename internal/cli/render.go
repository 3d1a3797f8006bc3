package cli

import (
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <descriptor>",
	Short: "Render a JSON or YAML figure descriptor",
	Long: `Render a figure described in a JSON or YAML file. The descriptor is
validated against the figure schema before anything is sent to the engine;
data file paths inside it are relative to the descriptor.`,
	Example: `  plotpipe render figures/damped.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	fig, err := plotspec.NewLoader(log.Logger).LoadFile(args[0])
	if err != nil {
		return err
	}
	return renderFigure(cmd, args[0], fig)
}
