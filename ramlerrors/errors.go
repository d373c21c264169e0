package ramlerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrValidation indicates a specification validation failure.
	ErrValidation = errors.New("validation error")

	// ErrRootNode indicates a violation in the root of the document.
	ErrRootNode = errors.New("invalid root node")

	// ErrResourceNode indicates a violation in a resource or resource type.
	ErrResourceNode = errors.New("invalid resource node")

	// ErrParameter indicates a violation in a parameter, body or response.
	ErrParameter = errors.New("invalid parameter")
)

// ParseError represents a failure to load a RAML document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
// A validation session whose whitelist configuration lacks a required
// category fails with a ConfigError before any document check runs.
type ConfigError struct {
	// Option is the name of the problematic option or whitelist category
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ValidationError aggregates the violations found in one validation pass.
// Each element of Violations is a single violation record; errors.Is and
// errors.As walk into them, so a ValidationError matches ErrRootNode when
// at least one root-level violation was recorded.
type ValidationError struct {
	// Source is the document the violations were found in (may be empty)
	Source string
	// Violations holds every violation in document order
	Violations []error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	switch len(e.Violations) {
	case 0:
	case 1:
		msg += ": " + e.Violations[0].Error()
	default:
		msg += fmt.Sprintf(": %s (and %d more)", e.Violations[0].Error(), len(e.Violations)-1)
	}
	return msg
}

// Unwrap returns the individual violations for error chaining.
func (e *ValidationError) Unwrap() []error {
	return e.Violations
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
