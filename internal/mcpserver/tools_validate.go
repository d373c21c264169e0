package mcpserver

import (
	"context"

	"github.com/erraggy/ramltools/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The RAML document to validate"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N violations (for pagination)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of violations to return (default 100)"`
}

type validateIssue struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Context string `json:"context,omitempty"`
}

type validateOutput struct {
	Valid       bool            `json:"valid"`
	Title       string          `json:"title,omitempty"`
	Version     string          `json:"version,omitempty"`
	RAMLVersion string          `json:"raml_version,omitempty"`
	ErrorCount  int             `json:"error_count"`
	Returned    int             `json:"returned"`
	NextOffset  int             `json:"next_offset,omitempty"`
	Errors      []validateIssue `json:"errors,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	whitelists, err := whitelist()
	if err != nil {
		return toolError(err, cfg.ConfigFile), validateOutput{}, nil
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return toolError(err, input.Spec.File), validateOutput{}, nil
	}

	// Each call runs its own session; the cached tree is only read.
	result, err := validator.ValidateWithOptions(
		validator.WithParsed(*parseResult),
		validator.WithConfig(whitelists),
	)
	if err != nil {
		return toolError(err, input.Spec.File), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:       result.Valid,
		Title:       result.Title,
		Version:     result.Version,
		RAMLVersion: result.RAMLVersion,
		ErrorCount:  result.ErrorCount,
		Warnings:    result.Warnings,
	}

	shown, next := page(result.Errors, input.Offset, input.Limit)
	for _, e := range shown {
		output.Errors = append(output.Errors, validateIssue{
			Kind:    e.Kind.String(),
			Path:    e.Path,
			Message: e.Message,
			Field:   e.Field,
			Context: e.Context,
		})
	}

	output.Returned = len(output.Errors)
	output.NextOffset = next

	return nil, output, nil
}
