package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/ramltools/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	logger      Logger
	maxFileSize int64

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses a RAML document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.raml"),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Logger:      cfg.logger,
		MaxFileSize: cfg.maxFileSize,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{maxFileSize: DefaultMaxFileSize}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		[]string{"WithFilePath", "WithReader", "WithBytes"},
		map[string]bool{
			"WithFilePath": cfg.filePath != nil,
			"WithReader":   cfg.reader != nil,
			"WithBytes":    cfg.bytes != nil,
		},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets the structured logger for debug output
// Default: no logging
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes
// Default: 10MB
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size <= 0 {
			return fmt.Errorf("parser: max file size must be positive, got %d", size)
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides the SourcePath reported in the result
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
