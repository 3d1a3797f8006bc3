package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/shlex"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEngineCommand validates the engine command line
func (v *Validator) ValidateEngineCommand(command string) error {
	if strings.TrimSpace(command) == "" {
		return fmt.Errorf("engine command cannot be empty")
	}
	if _, err := shlex.Split(command); err != nil {
		return fmt.Errorf("invalid engine command: %w", err)
	}
	return nil
}

// ValidateVersionConstraint validates a semver constraint such as ">= 4.6"
func (v *Validator) ValidateVersionConstraint(constraint string) error {
	if constraint == "" {
		return nil // Probe disabled
	}
	if _, err := semver.NewConstraint(constraint); err != nil {
		return fmt.Errorf("invalid engine min_version %q: %w", constraint, err)
	}
	return nil
}

// ValidateCapacity validates the temporary file table size
func (v *Validator) ValidateCapacity(capacity int) error {
	if capacity < 2 {
		return fmt.Errorf("tempfiles capacity must be at least 2, got %d", capacity)
	}
	return nil
}

// ValidatePrefix validates the temporary file name prefix
func (v *Validator) ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("tempfiles prefix cannot be empty")
	}
	if strings.ContainsAny(prefix, `/\"`) {
		return fmt.Errorf("tempfiles prefix %q must not contain path separators or quotes", prefix)
	}
	return nil
}

// ValidateLogLevel validates log level
func (v *Validator) ValidateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of: %s)", level, strings.Join(validLevels, ", "))
}

// ValidateMetricsAddr validates the metrics listen address
func (v *Validator) ValidateMetricsAddr(addr string) error {
	if addr == "" {
		return nil // Disabled
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid metrics addr %q: %w", addr, err)
	}
	return nil
}

// ValidateConfig performs comprehensive validation
func (v *Validator) ValidateConfig(cfg *Config) []error {
	var errors []error

	if err := v.ValidateEngineCommand(cfg.Engine.Command); err != nil {
		errors = append(errors, err)
	}
	if err := v.ValidateVersionConstraint(cfg.Engine.MinVersion); err != nil {
		errors = append(errors, err)
	}

	if err := v.ValidateCapacity(cfg.TempFiles.Capacity); err != nil {
		errors = append(errors, err)
	}
	if err := v.ValidatePrefix(cfg.TempFiles.Prefix); err != nil {
		errors = append(errors, err)
	}

	if err := v.ValidateLogLevel(cfg.Logging.Level); err != nil {
		errors = append(errors, err)
	}
	if cfg.Logging.MaxSize < 0 {
		errors = append(errors, fmt.Errorf("logging.max_size must be >= 0"))
	}

	if err := v.ValidateMetricsAddr(cfg.Metrics.Addr); err != nil {
		errors = append(errors, err)
	}

	return errors
}
