package cli

import (
	"errors"
	"fmt"

	"github.com/harun/plotpipe/internal/config"
	"github.com/harun/plotpipe/internal/logger"
	"github.com/harun/plotpipe/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile    string
	logLevel   string
	engineFlag string

	appConfig  *config.Config
	appLogger  *logger.Logger
	appJournal *observability.Journal
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plotpipe",
	Short: "plotpipe - drive gnuplot from data files and figure descriptors",
	Long: `plotpipe streams data to a gnuplot process through temporary files.
It plots data files and builtin functions, draws histograms, renders
declarative figure descriptors and can redraw a figure whenever its data
changes.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, teardown(rootCmd, nil))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.plotpipe/plotpipe.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&engineFlag, "engine", "", `engine command line, e.g. "gnuplot --persist"; overrides the config file`)

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// setup loads the configuration and installs the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if engineFlag != "" {
		cfg.Engine.Command = engineFlag
	}

	if errs := config.NewValidator().ValidateConfig(cfg); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	lg, err := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		Console:    true,
		Pretty:     cfg.Logging.Pretty,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: logger.DefaultConfig().MaxBackups,
		Output:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Logging.Journal != "" {
		j, err := observability.OpenJournal(cfg.Logging.Journal)
		if err != nil {
			lg.Close()
			return fmt.Errorf("failed to open journal: %w", err)
		}
		appJournal = j
	}

	appConfig = cfg
	appLogger = lg

	log.Debug().
		Str("command", cmd.Name()).
		Str("engine", cfg.Engine.Command).
		Msg("Configuration loaded")

	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	var errs []error
	if appJournal != nil {
		errs = append(errs, appJournal.Close())
		appJournal = nil
	}
	if appLogger != nil {
		errs = append(errs, appLogger.Close())
		appLogger = nil
	}
	return errors.Join(errs...)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
