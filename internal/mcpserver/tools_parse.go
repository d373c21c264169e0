package mcpserver

import (
	"context"

	"github.com/erraggy/ramltools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The RAML document to parse"`
}

type parseOutput struct {
	Title             string   `json:"title,omitempty"`
	Version           string   `json:"version,omitempty"`
	BaseURI           string   `json:"base_uri,omitempty"`
	RAMLVersion       string   `json:"raml_version,omitempty"`
	MediaType         string   `json:"media_type,omitempty"`
	Protocols         []string `json:"protocols,omitempty"`
	ResourceCount     int      `json:"resource_count"`
	MethodCount       int      `json:"method_count"`
	TraitCount        int      `json:"trait_count"`
	ResourceTypeCount int      `json:"resource_type_count"`
	Resources         []string `json:"resources,omitempty"`
	Traits            []string `json:"traits,omitempty"`
	ResourceTypes     []string `json:"resource_types,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return toolError(err, input.Spec.File), parseOutput{}, nil
	}

	root := result.Root
	output := parseOutput{
		Title:             root.Title,
		Version:           root.Version,
		BaseURI:           root.BaseURI,
		RAMLVersion:       result.RAMLVersion,
		MediaType:         root.MediaType,
		Protocols:         root.Protocols,
		ResourceCount:     result.Stats.ResourceCount,
		MethodCount:       result.Stats.MethodCount,
		TraitCount:        result.Stats.TraitCount,
		ResourceTypeCount: result.Stats.ResourceTypeCount,
		Warnings:          result.Warnings,
	}

	var walk func([]*parser.ResourceNode)
	walk = func(resources []*parser.ResourceNode) {
		for _, r := range resources {
			output.Resources = append(output.Resources, r.Path)
			walk(r.Resources)
		}
	}
	walk(root.Resources)

	for _, t := range root.Traits {
		output.Traits = append(output.Traits, t.Name)
	}
	for _, rt := range root.ResourceTypes {
		output.ResourceTypes = append(output.ResourceTypes, rt.Name)
	}

	return nil, output, nil
}
