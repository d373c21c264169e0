// Package validator checks parsed RAML documents for semantic correctness.
//
// Validation never stops at the first problem. Every check appends its
// violation to the session's collector and the pass continues, so a single
// run reports every problem in document order. Each field check reports at
// most one violation per run: the first rule it breaks.
//
// # Quick Start
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
// Validating with custom whitelists:
//
//	cfg, err := config.Load("whitelist.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	v := validator.New()
//	v.Config = cfg
//	result, _ := v.Validate("api.raml")
//
// # Order of checks
//
// The root document is checked first (title, version, protocols, baseUri,
// baseUriParameters, uriParameters, mediaType, documentation, schemas,
// securedBy, resources), then root parameters, traits, resource types and
// finally resources depth first. A resource's methods are checked after its
// own fields and before its nested resources.
//
// # Errors
//
// Violations are returned in ValidationResult.Errors, never as a Go error.
// The returned error is reserved for problems with the session itself: an
// unreadable document (matching ramlerrors.ErrParse) or a configuration that
// lacks a whitelist category (matching ramlerrors.ErrConfig). Use
// ValidationResult.Err to treat violations as an error.
//
// The collector used by a session is not safe for concurrent use. Run
// concurrent validations with separate ValidateRoot calls; each call owns its
// own collector.
package validator
