// Package parser loads RAML 0.8 API specification documents into a tree of
// typed nodes.
//
// The parser builds the complete tree before returning: the root's scalar
// fields first, then declared traits and resource types, then resources in
// document order. Nothing is validated here beyond the structure needed to
// build nodes; semantic checks live in the validator package.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("api.raml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Root.Title, result.Stats.ResourceCount)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.Logger = parser.NewSlogAdapter(slog.Default())
//	result, _ := p.Parse("api.raml")
//
// # References
//
// Trait, resource type and security scheme references are decoded into the
// Reference variants NameRef, ParameterizedRef and MalformedRef. A reference
// of an unsupported shape is kept as a MalformedRef rather than rejected, so
// the validator can report it alongside every other violation.
//
// # Limitations
//
// !include tags are not followed. The tagged scalar stays in the tree as a
// plain string and a warning is added to ParseResult.Warnings.
package parser
