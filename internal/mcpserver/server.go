// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes ramltools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/erraggy/ramltools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ramltools checks RAML 0.8 API definitions.

Tools:
- validate: semantic violations with their document path. Page through long reports with offset/limit; next_offset is set while more remain.
- parse: title, version, base URI, resource tree and declared traits and resource types.

Pass a document either as a file path or as inline content, never both.

Environment (set in the MCP client config):
- RAMLTOOLS_CONFIG_FILE: whitelist YAML (protocols, media_types, prim_types, resp_codes); built-in defaults when unset
- RAMLTOOLS_VALIDATE_LIMIT (100) and RAMLTOOLS_MAX_LIMIT (1000): page size default and ceiling
- RAMLTOOLS_MAX_INLINE_SIZE (10MiB): largest inline document
- RAMLTOOLS_CACHE_ENABLED (true) and RAMLTOOLS_CACHE_MAX_SIZE (10): documents are remembered by a hash of their bytes, so an edited file is always re-read`

// Run serves the validate and parse tools over stdio until the client
// disconnects or ctx is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "ramltools", Version: ramltools.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check a RAML 0.8 document against the RAML rules and the configured whitelists. Each violation carries its kind (root, resource, parameter), document path, field and parameter context.",
	}, handleValidate)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Summarise a RAML 0.8 document: title, version, base URI, media type, protocols, every resource path, trait and resource type names, and parse warnings.",
	}, handleParse)

	return server.Run(ctx, &mcp.StdioTransport{})
}

// page returns items[offset:offset+limit] and the offset of the following
// page, or 0 when nothing follows. A non-positive limit means
// cfg.ValidateLimit; cfg.MaxLimit caps it.
func page[T any](items []T, offset, limit int) ([]T, int) {
	if limit <= 0 {
		limit = cfg.ValidateLimit
	}
	limit = min(limit, cfg.MaxLimit)
	if offset < 0 || offset >= len(items) {
		return nil, 0
	}
	rest := items[offset:]
	if len(rest) <= limit {
		return rest, 0
	}
	return rest[:limit], offset + limit
}

// toolError reports err to the client with every supplied path reduced to
// its base name, so the server's directory layout is not disclosed.
func toolError(err error, paths ...string) *mcp.CallToolResult {
	msg := err.Error()
	for _, p := range paths {
		if p == "" {
			continue
		}
		base := filepath.Base(p)
		if abs, absErr := filepath.Abs(p); absErr == nil {
			msg = strings.ReplaceAll(msg, abs, base)
		}
		msg = strings.ReplaceAll(msg, p, base)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
