package plotspec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is a descriptor encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: .json, .yaml, .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Loader loads and validates figure descriptors
type Loader struct {
	logger       zerolog.Logger
	schemaLoader gojsonschema.JSONLoader
}

// NewLoader creates a new descriptor loader
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger:       logger.With().Str("component", "plotspec").Logger(),
		schemaLoader: gojsonschema.NewStringLoader(FigureSchema),
	}
}

// LoadFile reads, validates and decodes a descriptor file
func (l *Loader) LoadFile(path string) (*Figure, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	fig, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fig.dir = filepath.Dir(path)

	l.logger.Debug().
		Str("path", path).
		Int("series", len(fig.Series)).
		Bool("functions", fig.Functions != nil).
		Bool("histogram", fig.Histogram != nil).
		Msg("Loaded figure descriptor")

	return fig, nil
}

// Parse validates and decodes a descriptor. Relative data file paths in
// the result are resolved against the working directory.
func (l *Loader) Parse(data []byte, format Format) (*Figure, error) {
	var (
		doc any
		fig Figure
	)

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor JSON: %w", err)
		}
		if err := l.validateSchema(doc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &fig); err != nil {
			return nil, fmt.Errorf("failed to decode descriptor: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
		}
		if err := l.validateSchema(doc); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &fig); err != nil {
			return nil, fmt.Errorf("failed to decode descriptor: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return &fig, nil
}

// validateSchema validates a decoded document against FigureSchema
func (l *Loader) validateSchema(doc any) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidFigure)
	}

	result, err := gojsonschema.Validate(l.schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalidFigure, err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidFigure, strings.Join(msgs, "; "))
	}

	return nil
}
