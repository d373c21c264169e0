// Package ramlerrors provides structured error types for the ramltools library.
//
// Import path: github.com/erraggy/ramltools/ramlerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell a misconfigured validation session apart from a bad
// document.
//
// # Error Types
//
//   - [ParseError]: YAML parsing failures and structural issues in the RAML source
//   - [ConfigError]: Invalid configuration, including a missing whitelist category
//   - [ValidationError]: The aggregated semantic violations of one validation pass
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrValidation]: Matches any [ValidationError] and any single violation record
//   - [ErrRootNode]: Matches violations reported against the root document
//   - [ErrResourceNode]: Matches violations reported against a resource or resource type
//   - [ErrParameter]: Matches violations reported against a parameter, body or response
//
// # Usage Examples
//
// Distinguish a fatal configuration problem from document violations:
//
//	result, err := validator.ValidateWithOptions(validator.WithFilePath("api.raml"))
//	if errors.Is(err, ramlerrors.ErrConfig) {
//	    // the whitelist configuration is incomplete; nothing was validated
//	}
//
// Check whether any violation concerns a parameter:
//
//	if err := result.Err(); errors.Is(err, ramlerrors.ErrParameter) {
//	    // at least one parameter, body or response is invalid
//	}
package ramlerrors
