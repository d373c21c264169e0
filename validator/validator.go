package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
	"github.com/erraggy/ramltools/ramlerrors"
)

// defaultErrorCapacity is the initial capacity of a session's collector
const defaultErrorCapacity = 10

// ValidationError represents a single violation
type ValidationError = issues.Issue

// Kind identifies the node kind a violation was reported against
type Kind = issues.Kind

const (
	// KindRoot marks violations in the root of the document
	KindRoot = issues.KindRoot
	// KindResource marks violations in resources, methods and resource types
	KindResource = issues.KindResource
	// KindParameter marks violations in parameters, bodies and responses
	KindParameter = issues.KindParameter
)

// ValidationResult contains the results of validating a RAML document
type ValidationResult struct {
	// Valid is true if no violations were found
	Valid bool `json:"valid" yaml:"valid"`
	// Title is the API title of the validated document
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Version is the API version of the validated document
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// RAMLVersion is the version from the document's "#%RAML" header
	RAMLVersion string `json:"ramlVersion,omitempty" yaml:"ramlVersion,omitempty"`
	// Errors contains every violation in report order
	Errors []ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
	// ErrorCount is the total number of violations
	ErrorCount int `json:"errorCount" yaml:"errorCount"`
	// Warnings contains non-fatal notes carried over from parsing
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// SourcePath is the source path of the parsed document
	SourcePath string `json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration `json:"loadTime" yaml:"loadTime"`
	// SourceSize is the size of the source data in bytes
	SourceSize int64 `json:"sourceSize" yaml:"sourceSize"`
	// Stats contains statistical information about the document
	Stats parser.DocumentStats `json:"stats" yaml:"stats"`
}

// Err returns nil for a valid result and a *ramlerrors.ValidationError
// wrapping every violation otherwise.
func (r *ValidationResult) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	violations := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		violations[i] = e
	}
	return &ramlerrors.ValidationError{Source: r.SourcePath, Violations: violations}
}

// CountKind returns the number of violations of the given kind.
func (r *ValidationResult) CountKind(kind Kind) int {
	n := 0
	for _, e := range r.Errors {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Validator checks RAML documents against the semantic rules and whitelists.
type Validator struct {
	// Config supplies the whitelists. Defaults to config.Default() if nil.
	Config config.Provider
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Validator instance with default whitelists
func New() *Validator {
	return &Validator{Config: config.Default()}
}

// ValidateWithOptions validates a RAML document using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("api.raml"),
//	    validator.WithConfig(cfg),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		Config: cfg.config,
		Logger: cfg.logger,
	}

	if cfg.parsed != nil {
		return v.ValidateParsed(*cfg.parsed)
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	return v.Validate(*cfg.filePath)
}

func (v *Validator) log() parser.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return parser.NopLogger{}
}

func (v *Validator) provider() config.Provider {
	if v.Config != nil {
		return v.Config
	}
	return config.Default()
}

// Validate parses and validates a RAML file
func (v *Validator) Validate(specPath string) (*ValidationResult, error) {
	p := parser.New()
	p.Logger = v.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to parse specification: %w", err)
	}
	return v.ValidateParsed(*parseResult)
}

// ValidateParsed validates an already parsed RAML document
func (v *Validator) ValidateParsed(parseResult parser.ParseResult) (*ValidationResult, error) {
	if parseResult.Root == nil {
		return nil, errors.New("validator: parse result has no document root")
	}
	result, err := v.ValidateRoot(parseResult.Root)
	if err != nil {
		return nil, err
	}
	result.RAMLVersion = parseResult.RAMLVersion
	result.Warnings = parseResult.Warnings
	result.SourcePath = parseResult.SourcePath
	result.LoadTime = parseResult.LoadTime
	result.SourceSize = parseResult.SourceSize
	result.Stats = parseResult.Stats
	return result, nil
}

// ValidateRoot validates a document tree. The tree must be complete: every
// trait and resource type the resources reference must already be present.
//
// A whitelist category missing from the configuration is fatal and is
// returned as a *ramlerrors.ConfigError with no result.
func (v *Validator) ValidateRoot(root *parser.RootNode) (*ValidationResult, error) {
	if root == nil {
		return nil, errors.New("validator: document root is nil")
	}
	s := newSession(v.provider(), issues.NewCollector(defaultErrorCapacity), v.log())
	if err := s.run(root); err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	errs := s.out.Issues()
	result := &ValidationResult{
		Title:      root.Title,
		Version:    root.Version,
		Errors:     errs,
		ErrorCount: len(errs),
		Valid:      len(errs) == 0,
		Stats:      parser.GetDocumentStats(root),
	}
	v.log().Info("validation complete",
		"title", root.Title,
		"valid", result.Valid,
		"errors", result.ErrorCount,
	)
	return result, nil
}
