package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/watch"
	"github.com/erraggy/ramltools/parser"
	"github.com/erraggy/ramltools/validator"
	"github.com/fatih/color"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Config  string
	Quiet   bool
	Verbose bool
	Format  string
	Watch   bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Config, "config", "", "YAML whitelist file (protocols, media_types, prim_types, resp_codes)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parser and validator debug output to stderr")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Watch, "watch", false, "re-validate whenever the file changes (until interrupted)")
	fs.BoolVar(&flags.Watch, "w", false, "re-validate whenever the file changes (until interrupted)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: ramltools validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a RAML 0.8 file or stdin against the RAML semantic rules.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  ramltools validate api.raml\n")
		Writef(fs.Output(), "  ramltools validate --config whitelist.yaml api.raml\n")
		Writef(fs.Output(), "  cat api.raml | ramltools validate -q -\n")
		Writef(fs.Output(), "  ramltools validate --format json api.raml | jq '.valid'\n")
		Writef(fs.Output(), "  ramltools validate --watch api.raml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runValidate(ctx, args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	// Exit with error if validation failed
	if result != nil && !result.Valid {
		stop()
		os.Exit(1)
	}
	return nil
}

// validateRun holds everything one validation pass needs.
type validateRun struct {
	specPath   string
	flags      *ValidateFlags
	whitelists *config.Config
	logger     parser.Logger
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// runValidate does the work of HandleValidate against explicit streams.
// A nil result with a nil error means help was requested or watch mode
// ended.
func runValidate(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (*validator.ValidationResult, error) {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return nil, err
	}
	if flags.Watch && specPath == StdinFilePath {
		return nil, fmt.Errorf("--watch cannot be used with stdin")
	}

	whitelists := config.Default()
	if flags.Config != "" {
		loaded, err := config.Load(flags.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		whitelists = loaded
	}

	run := &validateRun{
		specPath:   specPath,
		flags:      flags,
		whitelists: whitelists,
		logger:     newLogger(stderr, flags.Verbose),
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
	}

	if !flags.Watch {
		return run.once()
	}

	// In watch mode a failing pass is reported and watching continues.
	if _, err := run.once(); err != nil {
		Writef(stderr, "Error: %v\n", err)
	}
	err := watch.File(ctx, specPath, watch.DefaultDebounce, run.logger, func() {
		Writef(stderr, "\n--- %s changed, re-validating ---\n\n", specPath)
		if _, err := run.once(); err != nil {
			Writef(stderr, "Error: %v\n", err)
		}
	})
	return nil, err
}

// once parses, validates and reports the document a single time.
func (r *validateRun) once() (*validator.ValidationResult, error) {
	startTime := time.Now()
	parseResult, err := parseInput(r.specPath, r.stdin, r.logger)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(r.specPath), err)
	}

	opts := []validator.Option{
		validator.WithParsed(*parseResult),
		validator.WithConfig(r.whitelists),
	}
	if r.logger != nil {
		opts = append(opts, validator.WithLogger(r.logger))
	}
	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", FormatSpecPath(r.specPath), err)
	}
	totalTime := time.Since(startTime)

	// Handle structured output formats
	if r.flags.Format == FormatJSON || r.flags.Format == FormatYAML {
		if err := OutputStructured(r.stdout, result, r.flags.Format); err != nil {
			return nil, err
		}
		return result, nil
	}

	if r.flags.Quiet {
		return result, nil
	}

	w := r.stderr
	Writef(w, "RAML Specification Validator\n")
	Writef(w, "============================\n\n")
	OutputSpecHeader(w, r.specPath, result.RAMLVersion)
	Writef(w, "Title: %s\n", result.Title)
	OutputSpecStats(w, result.SourceSize, result.Stats, result.LoadTime)
	Writef(w, "Total Time: %v\n\n", totalTime)

	if len(result.Warnings) > 0 {
		Writef(w, "Warnings (%d):\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			Writef(w, "  %s\n", warning)
		}
		Writef(w, "\n")
	}

	if len(result.Errors) > 0 {
		Writef(w, "Errors (%d):\n", result.ErrorCount)
		for _, e := range result.Errors {
			Writef(w, "  %s\n", e.String())
		}
		Writef(w, "\n")
	}

	if result.Valid {
		Writef(w, "%s\n", color.GreenString("✓ Validation passed"))
	} else {
		Writef(w, "%s\n", color.RedString("✗ Validation failed: %d error(s)", result.ErrorCount))
	}
	return result, nil
}
