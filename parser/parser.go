package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/erraggy/ramltools/ramlerrors"
	"go.yaml.in/yaml/v4"
)

const (
	// DefaultMaxFileSize is the largest document the parser reads (10MB).
	DefaultMaxFileSize int64 = 10 * 1024 * 1024

	// ramlHeaderPrefix starts the first line of every RAML document.
	ramlHeaderPrefix = "#%RAML"
)

// Parser loads RAML documents into a tree of typed nodes.
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{MaxFileSize: DefaultMaxFileSize}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// ParseResult contains the parsed RAML document and metadata.
//
// Callers should treat ParseResult as read-only after parsing. The validator
// relies on the tree being complete and unchanged while it runs.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	SourcePath string
	// RAMLVersion is the version from the "#%RAML" header line (e.g. "0.8"), empty if absent
	RAMLVersion string
	// Root is the parsed document tree
	Root *RootNode
	// Warnings contains non-fatal issues such as unresolved !include tags
	Warnings []string
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse parses a RAML document from a file path.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	start := time.Now()
	info, err := os.Stat(specPath)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: specPath, Message: "failed to read file", Cause: err}
	}
	if info.Size() > p.maxFileSize() {
		return nil, &ramlerrors.ParseError{
			Path:    specPath,
			Message: fmt.Sprintf("file size %d exceeds limit of %d bytes", info.Size(), p.maxFileSize()),
		}
	}
	data, err := os.ReadFile(specPath) //nolint:gosec // reading the user-supplied document is the point
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: specPath, Message: "failed to read file", Cause: err}
	}
	loadTime := time.Since(start)

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a RAML document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: "ParseReader.raml", Message: "failed to read data", Cause: err}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &ramlerrors.ParseError{
			Path:    "ParseReader.raml",
			Message: fmt.Sprintf("input exceeds limit of %d bytes", p.maxFileSize()),
		}
	}
	loadTime := time.Since(start)

	res, err := p.parseBytes(data, "ParseReader.raml")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses a RAML document from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	return p.parseBytes(data, "ParseBytes.raml")
}

func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	result := &ParseResult{
		SourcePath:  sourcePath,
		RAMLVersion: detectRAMLVersion(data),
		SourceSize:  int64(len(data)),
		Warnings:    make([]string, 0),
	}
	if result.RAMLVersion == "" {
		result.Warnings = append(result.Warnings, "document does not start with a '#%RAML <version>' header")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "failed to parse YAML", Cause: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, &ramlerrors.ParseError{
			Path:    sourcePath,
			Line:    top.Line,
			Column:  top.Column,
			Message: "document root must be a mapping",
		}
	}

	d := &decoder{source: sourcePath, warnings: &result.Warnings}
	root, err := d.decodeRoot(top)
	if err != nil {
		return nil, err
	}
	result.Root = root
	result.Stats = GetDocumentStats(root)

	p.log().Debug("parsed RAML document",
		"source", sourcePath,
		"ramlVersion", result.RAMLVersion,
		"resources", result.Stats.ResourceCount,
		"methods", result.Stats.MethodCount,
		"traits", result.Stats.TraitCount,
		"resourceTypes", result.Stats.ResourceTypeCount,
	)
	for _, w := range result.Warnings {
		p.log().Warn("parse warning", "source", sourcePath, "warning", w)
	}
	return result, nil
}

// detectRAMLVersion reads the version from a leading "#%RAML 0.8" line.
func detectRAMLVersion(data []byte) string {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	header := strings.TrimSpace(string(line))
	if !strings.HasPrefix(header, ramlHeaderPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, ramlHeaderPrefix))
}
