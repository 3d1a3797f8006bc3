package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/harun/plotpipe/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	watchFigure      figureFlags
	watchColumns     string
	watchDebounce    time.Duration
	watchFor         time.Duration
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch <descriptor | file...>",
	Short: "Redraw a figure whenever its data changes",
	Long: `Draw a figure and redraw it each time one of its data files changes.
The argument is either a single JSON or YAML figure descriptor or a list of
data files plotted like "plotpipe plot". A descriptor is watched too and is
re-read on every redraw. The engine session stays open until interrupted.`,
	Example: `  plotpipe watch --columns 1:2 live.dat
  plotpipe watch --metrics-addr 127.0.0.1:9464 dashboard.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchFigure.register(watchCmd)
	watchCmd.Flags().StringVar(&watchColumns, "columns", "1:2", "x:y columns to plot (1-based)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before a change triggers a redraw")
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "stop after this long (0 runs until interrupted)")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (default metrics.addr)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	load, err := figureSource(args)
	if err != nil {
		return err
	}

	fig, err := load()
	if err != nil {
		return err
	}
	paths := fig.DataFiles()
	if len(args) == 1 && isDescriptor(args[0]) {
		paths = append(paths, args[0])
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: the figure reads no data files")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if watchFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFor)
		defer cancel()
	}

	metricsAddr := watchMetricsAddr
	if metricsAddr == "" {
		metricsAddr = appConfig.Metrics.Addr
	}
	if metricsAddr != "" {
		srv := observability.NewServer(metricsAddr, log.Logger)
		if err := srv.Start(); err != nil {
			return err
		}
		defer srv.Stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Metrics: http://%s/metrics\n", srv.Addr())
	}

	sc, err := sessionConfig(cmd)
	if err != nil {
		return err
	}
	session, err := gnuplot.Open(sc)
	if err != nil {
		return err
	}

	replotter := watch.NewReplotter(session, func() error {
		fig, err := load()
		if err != nil {
			return err
		}
		return plotspec.Render(session, fig)
	}, log.Logger)

	if err := replotter.Draw(); err != nil {
		return errors.Join(err, session.Close())
	}

	watcher, err := watch.New(watch.Config{
		Paths:    paths,
		Debounce: watchDebounce,
		OnChange: replotter.Replot,
	})
	if err != nil {
		return errors.Join(err, session.Close())
	}
	if err := watcher.Start(); err != nil {
		return errors.Join(err, watcher.Stop(), session.Close())
	}

	start := time.Now()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d file(s), press Ctrl-C to stop\n", len(paths))

	<-ctx.Done()

	// no redraw may touch the session once it starts closing
	err = watcher.Stop()
	replotter.Stop()
	err = errors.Join(err, session.Close())

	fmt.Fprintf(cmd.OutOrStdout(), "Stopped after %d redraw(s) in %s\n", replotter.Redraws(), formatDuration(time.Since(start)))
	return err
}

// figureSource returns a loader producing the figure for args. Descriptors
// are re-read on every call so edits to them take effect on redraw.
func figureSource(args []string) (func() (*plotspec.Figure, error), error) {
	if len(args) == 1 && isDescriptor(args[0]) {
		loader := plotspec.NewLoader(log.Logger)
		path := args[0]
		return func() (*plotspec.Figure, error) {
			return loader.LoadFile(path)
		}, nil
	}

	columns, err := parseColumns(watchColumns)
	if err != nil {
		return nil, err
	}
	return func() (*plotspec.Figure, error) {
		fig := dataFigure(args, columns, watchFigure.style)
		watchFigure.apply(fig)
		return fig, nil
	}, nil
}

func isDescriptor(path string) bool {
	_, err := plotspec.FormatFromPath(path)
	return err == nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
