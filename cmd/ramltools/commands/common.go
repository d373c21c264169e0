// Package commands provides CLI command handlers for ramltools.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/ramltools"
	"github.com/erraggy/ramltools/parser"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to w.
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputSpecHeader outputs the common specification header.
// This includes ramltools version, specification path, and RAML version.
func OutputSpecHeader(w io.Writer, specPath, ramlVersion string) {
	if ramlVersion == "" {
		ramlVersion = "unknown"
	}
	Writef(w, "ramltools version: %s\n", ramltools.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(w, "RAML Version: %s\n", ramlVersion)
}

// OutputSpecStats outputs the common specification statistics.
// This includes source size, resource and method counts, declarations and load time.
func OutputSpecStats(w io.Writer, sourceSize int64, stats parser.DocumentStats, loadTime any) {
	Writef(w, "Source Size: %s\n", parser.FormatBytes(sourceSize))
	Writef(w, "Resources: %d\n", stats.ResourceCount)
	Writef(w, "Methods: %d\n", stats.MethodCount)
	Writef(w, "Traits: %d\n", stats.TraitCount)
	Writef(w, "Resource Types: %d\n", stats.ResourceTypeCount)
	Writef(w, "Load Time: %v\n", loadTime)
}

// newLogger returns a debug-level logger on w when verbose is set, or nil.
func newLogger(w io.Writer, verbose bool) parser.Logger {
	if !verbose {
		return nil
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// parseInput parses specPath, reading stdin when it is StdinFilePath.
func parseInput(specPath string, stdin io.Reader, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(stdin), parser.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	if logger != nil {
		opts = append(opts, parser.WithLogger(logger))
	}
	return parser.ParseWithOptions(opts...)
}
