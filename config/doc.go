// Package config provides the whitelists the validator checks documents against.
//
// A whitelist configuration maps a category name to the set of values a RAML
// document may use for it:
//
//   - protocols: transfer protocols for the root "protocols" list (HTTP, HTTPS)
//   - media_types: media types accepted for "mediaType" and body keys
//   - prim_types: primitive parameter types accepted for headers
//   - resp_codes: HTTP status codes accepted as response keys
//
// A [Config] is immutable once built. Validation sessions read it through the
// [Provider] interface and treat a missing category as a fatal configuration
// error rather than a document violation.
//
// # Configuration Files
//
// Whitelists can be loaded from YAML:
//
//	inherit_defaults: true
//	protocols: [HTTP, HTTPS, WS]
//	media_types:
//	  - application/vnd.example+json
//	resp_codes: [299]
//
// With inherit_defaults set, the listed values extend [Default]; otherwise the
// file is the complete configuration and omitted categories stay missing.
package config
