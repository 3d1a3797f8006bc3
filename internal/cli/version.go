package cli

import (
	"fmt"

	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show plotpipe and engine versions",
	Long: `Show the plotpipe version and probe the configured engine with
"--version". When engine.min_version is set the probe also reports whether
the engine satisfies it.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "plotpipe version %s\n", version)

	argv, err := appConfig.EngineArgv()
	if err != nil {
		return err
	}

	v, err := gnuplot.ProbeEngineVersion(argv[0], "")
	if err != nil {
		fmt.Fprintf(out, "engine: unavailable (%v)\n", err)
		return nil
	}
	fmt.Fprintf(out, "engine: %s %s\n", argv[0], v)

	if appConfig.Engine.MinVersion != "" {
		if err := gnuplot.CheckVersion(v, appConfig.Engine.MinVersion); err != nil {
			fmt.Fprintf(out, "engine does not satisfy %q: %v\n", appConfig.Engine.MinVersion, err)
			return err
		}
		fmt.Fprintf(out, "engine satisfies %q\n", appConfig.Engine.MinVersion)
	}
	return nil
}
