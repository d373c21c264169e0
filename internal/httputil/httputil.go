// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"regexp"
	"slices"
	"strconv"
)

// Form-encoded media types. Bodies with these types describe their payload
// with formParameters instead of a schema or example.
const (
	MediaTypeMultipartForm  = "multipart/form-data"
	MediaTypeURLEncodedForm = "application/x-www-form-urlencoded"
)

// formMediaTypes lists the form-encoded body media types.
var formMediaTypes = []string{MediaTypeMultipartForm, MediaTypeURLEncodedForm}

// StandardHTTPStatusCodes contains RFC 9110 officially defined HTTP status codes.
// These are the default response-code whitelist.
var StandardHTTPStatusCodes = map[int]bool{
	// 1xx Informational
	100: true, 101: true, 102: true, 103: true,
	// 2xx Success
	200: true, 201: true, 202: true, 203: true, 204: true, 205: true,
	206: true, 207: true, 208: true, 226: true,
	// 3xx Redirection
	300: true, 301: true, 302: true, 303: true, 304: true, 305: true,
	307: true, 308: true,
	// 4xx Client Error
	400: true, 401: true, 402: true, 403: true, 404: true, 405: true,
	406: true, 407: true, 408: true, 409: true, 410: true, 411: true,
	412: true, 413: true, 414: true, 415: true, 416: true, 417: true,
	418: true, 421: true, 422: true, 423: true, 424: true, 425: true,
	426: true, 428: true, 429: true, 431: true, 451: true,
	// 5xx Server Error
	500: true, 501: true, 502: true, 503: true, 504: true, 505: true,
	506: true, 507: true, 508: true, 510: true, 511: true,
}

// StandardStatusCodeStrings returns the standard status codes in ascending
// order, formatted as decimal strings.
func StandardStatusCodeStrings() []string {
	codes := make([]int, 0, len(StandardHTTPStatusCodes))
	for code := range StandardHTTPStatusCodes {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = strconv.Itoa(code)
	}
	return out
}

// IsStandardStatusCode checks if a status code is a well-defined standard HTTP code.
func IsStandardStatusCode(code int) bool {
	return StandardHTTPStatusCodes[code]
}

// IsFormMediaType reports whether mediaType is one of the form-encoded body types.
func IsFormMediaType(mediaType string) bool {
	return slices.Contains(formMediaTypes, mediaType)
}

// structuredMediaType finds an application/* type whose subtype ends in json or xml.
//
// The subtype class is restricted to letters, '.', '/', '0', '1' and '-'.
// Types such as application/hal+json or application/x-amz-json-1.1 with a
// digit outside 0-1 before the suffix do not match; they must be listed in
// the media_types whitelist instead. The search is unanchored and the
// quantifier lazy, so trailing parameters (";charset=utf-8") are accepted.
var structuredMediaType = regexp.MustCompile(`application/[A-Za-z./01\-]*?(json|xml)`)

// MatchesStructuredMediaType reports whether mediaType belongs to the JSON/XML
// family. It is the fallback used when a media type is not whitelisted.
func MatchesStructuredMediaType(mediaType string) bool {
	return structuredMediaType.MatchString(mediaType)
}
