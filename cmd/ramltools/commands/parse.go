package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/ramltools/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Quiet   bool
	Verbose bool
	Format  string
}

// ParseSummary is the structured output of the parse command
type ParseSummary struct {
	SourcePath    string               `json:"sourcePath"              yaml:"sourcePath"`
	RAMLVersion   string               `json:"ramlVersion,omitempty"   yaml:"ramlVersion,omitempty"`
	Title         string               `json:"title,omitempty"         yaml:"title,omitempty"`
	Version       string               `json:"version,omitempty"       yaml:"version,omitempty"`
	BaseURI       string               `json:"baseUri,omitempty"       yaml:"baseUri,omitempty"`
	MediaType     string               `json:"mediaType,omitempty"     yaml:"mediaType,omitempty"`
	Protocols     []string             `json:"protocols,omitempty"     yaml:"protocols,omitempty"`
	Resources     []string             `json:"resources,omitempty"     yaml:"resources,omitempty"`
	Traits        []string             `json:"traits,omitempty"        yaml:"traits,omitempty"`
	ResourceTypes []string             `json:"resourceTypes,omitempty" yaml:"resourceTypes,omitempty"`
	Stats         parser.DocumentStats `json:"stats"                   yaml:"stats"`
	Warnings      []string             `json:"warnings,omitempty"      yaml:"warnings,omitempty"`
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the summary, no header")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the summary, no header")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parser debug output to stderr")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: ramltools parse [flags] <file|->\n\n")
		Writef(fs.Output(), "Parse a RAML file or stdin and summarise its structure.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  ramltools parse api.raml\n")
		Writef(fs.Output(), "  ramltools parse --format yaml api.raml\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	return runParse(args, os.Stdin, os.Stdout, os.Stderr)
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupParseFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := parseInput(specPath, stdin, newLogger(stderr, flags.Verbose))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	summary := summarize(result)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(stdout, summary, flags.Format)
	}

	if !flags.Quiet {
		Writef(stderr, "RAML Specification Parser\n")
		Writef(stderr, "=========================\n\n")
		OutputSpecHeader(stderr, specPath, result.RAMLVersion)
		OutputSpecStats(stderr, result.SourceSize, result.Stats, result.LoadTime)
		Writef(stderr, "\n")
	}

	Writef(stdout, "Title: %s\n", summary.Title)
	if summary.Version != "" {
		Writef(stdout, "Version: %s\n", summary.Version)
	}
	if summary.BaseURI != "" {
		Writef(stdout, "Base URI: %s\n", summary.BaseURI)
	}
	for _, r := range summary.Resources {
		Writef(stdout, "  %s\n", r)
	}
	for _, w := range summary.Warnings {
		Writef(stderr, "Warning: %s\n", w)
	}
	return nil
}

func summarize(result *parser.ParseResult) ParseSummary {
	root := result.Root
	summary := ParseSummary{
		SourcePath:  result.SourcePath,
		RAMLVersion: result.RAMLVersion,
		Title:       root.Title,
		Version:     root.Version,
		BaseURI:     root.BaseURI,
		MediaType:   root.MediaType,
		Protocols:   root.Protocols,
		Stats:       result.Stats,
		Warnings:    result.Warnings,
	}
	var walk func([]*parser.ResourceNode)
	walk = func(resources []*parser.ResourceNode) {
		for _, r := range resources {
			summary.Resources = append(summary.Resources, r.Path)
			walk(r.Resources)
		}
	}
	walk(root.Resources)
	for _, t := range root.Traits {
		summary.Traits = append(summary.Traits, t.Name)
	}
	for _, rt := range root.ResourceTypes {
		summary.ResourceTypes = append(summary.ResourceTypes, rt.Name)
	}
	return summary
}
