// Package ramltools provides tools for checking RAML API specification
// documents for semantic correctness.
//
// Validation reports every violation found in a document in a single pass
// instead of stopping at the first problem, so callers can present the full
// list to the author of the specification.
//
// # Overview
//
// The library consists of these packages:
//
//   - parser: Load a RAML document into a tree of typed nodes
//   - validator: Run the semantic rule set over a parsed tree
//   - config: Whitelists (protocols, media types, primitive types, response codes)
//   - ramlerrors: Structured error types for errors.Is / errors.As
//
// # Quick Start
//
// Validate a RAML file with the default whitelists:
//
//	import "github.com/erraggy/ramltools/validator"
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("api.raml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range result.Errors {
//		fmt.Println(e.String())
//	}
//
// Validate with a custom whitelist file:
//
//	cfg, err := config.Load("ramltools.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("api.raml"),
//		validator.WithConfig(cfg),
//	)
//
// # Command Line
//
// The ramltools binary in cmd/ramltools wraps the validator:
//
//	ramltools validate api.raml
//	ramltools validate --config whitelist.yaml --format json api.raml
//	ramltools validate --watch api.raml
//	ramltools parse api.raml
//
// The mcp command serves the same validate and parse operations to MCP
// clients over stdio:
//
//	ramltools mcp
package ramltools
