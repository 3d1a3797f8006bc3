package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/harun/plotpipe/pkg/tempfile"
)

// Config represents the main plotpipe configuration
type Config struct {
	// Engine process
	Engine EngineConfig `json:"engine" mapstructure:"engine"`

	// Temporary data files
	TempFiles TempFilesConfig `json:"tempfiles" mapstructure:"tempfiles"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Metrics endpoint
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// EngineConfig describes how gnuplot is started
type EngineConfig struct {
	Command      string `json:"command" mapstructure:"command"`             // shell-style, e.g. "gnuplot --persist"
	MinVersion   string `json:"min_version" mapstructure:"min_version"`     // semver constraint, empty skips the probe
	DefaultStyle string `json:"default_style" mapstructure:"default_style"` // style used when a series names none
}

// TempFilesConfig holds temporary data file settings
type TempFilesConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Prefix   string `json:"prefix" mapstructure:"prefix"`
	Capacity int    `json:"capacity" mapstructure:"capacity"` // table size; one slot stays free
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	MaxSize int    `json:"max_size" mapstructure:"max_size"` // MB
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
	Journal string `json:"journal" mapstructure:"journal"` // render journal path, empty disables it
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"` // e.g. "127.0.0.1:9464", empty disables it
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Command:      "gnuplot --persist",
			DefaultStyle: gnuplot.DefaultStyle,
		},
		TempFiles: TempFilesConfig{
			Prefix:   tempfile.DefaultPrefix,
			Capacity: tempfile.DefaultCapacity,
		},
		Logging: LoggingConfig{
			Level:   "info",
			MaxSize: 10,
			Pretty:  true,
		},
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// EngineArgv splits the engine command line into argv
func (c *Config) EngineArgv() ([]string, error) {
	argv, err := shlex.Split(c.Engine.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid engine command %q: %w", c.Engine.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("engine command is empty")
	}
	return argv, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.EngineArgv(); err != nil {
		return err
	}

	if c.TempFiles.Capacity < 2 {
		return fmt.Errorf("tempfiles.capacity must be at least 2, got %d", c.TempFiles.Capacity)
	}
	if c.TempFiles.Prefix == "" {
		return fmt.Errorf("tempfiles.prefix is required")
	}

	return nil
}

// SessionConfig converts the configuration into engine session options
func (c *Config) SessionConfig() (gnuplot.Config, error) {
	argv, err := c.EngineArgv()
	if err != nil {
		return gnuplot.Config{}, err
	}

	return gnuplot.Config{
		Command:      argv,
		MinVersion:   c.Engine.MinVersion,
		DefaultStyle: c.Engine.DefaultStyle,
		TempDir:      c.TempFiles.Dir,
		TempPrefix:   c.TempFiles.Prefix,
		TempCapacity: c.TempFiles.Capacity,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}, nil
}
