package validator

import (
	"fmt"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/options"
	"github.com/erraggy/ramltools/parser"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	// Configuration options
	config config.Provider
	logger parser.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		[]string{"WithFilePath", "WithParsed"},
		map[string]bool{
			"WithFilePath": cfg.filePath != nil,
			"WithParsed":   cfg.parsed != nil,
		},
	); err != nil {
		return nil, err
	}

	if cfg.config == nil {
		cfg.config = config.Default()
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *validateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithConfig sets the whitelist provider
// Default: config.Default()
func WithConfig(p config.Provider) Option {
	return func(cfg *validateConfig) error {
		if p == nil {
			return fmt.Errorf("validator: config provider cannot be nil")
		}
		cfg.config = p
		return nil
	}
}

// WithLogger sets the structured logger for debug output
// Default: no logging
func WithLogger(l parser.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = l
		return nil
	}
}
