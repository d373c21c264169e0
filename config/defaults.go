package config

import "github.com/erraggy/ramltools/internal/httputil"

// DefaultProtocols are the transfer protocols a RAML document may declare.
var DefaultProtocols = []string{"HTTP", "HTTPS"}

// DefaultPrimitiveTypes are the RAML named-parameter types.
var DefaultPrimitiveTypes = []string{"string", "number", "integer", "date", "boolean", "file"}

// DefaultMediaTypes are commonly used IANA media types. JSON and XML
// application types are also accepted by pattern, so they need not be listed.
var DefaultMediaTypes = []string{
	"application/javascript",
	"application/json",
	"application/octet-stream",
	"application/pdf",
	"application/x-www-form-urlencoded",
	"application/xml",
	"application/zip",
	"application/gzip",
	"application/hal+json",
	"application/problem+json",
	"application/problem+xml",
	"application/ld+json",
	"application/merge-patch+json",
	"application/json-patch+json",
	"application/atom+xml",
	"application/rss+xml",
	"application/soap+xml",
	"application/xhtml+xml",
	"application/yaml",
	"application/x-yaml",
	"audio/mpeg",
	"audio/ogg",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/svg+xml",
	"image/webp",
	"multipart/form-data",
	"multipart/mixed",
	"text/css",
	"text/csv",
	"text/html",
	"text/plain",
	"text/xml",
	"text/yaml",
	"video/mp4",
}

// Default returns the built-in whitelist configuration.
func Default() *Config {
	return New(defaultValues())
}

// defaultValues returns fresh copies of the default category values.
func defaultValues() map[Category][]string {
	return map[Category][]string{
		CategoryProtocols:  append([]string(nil), DefaultProtocols...),
		CategoryMediaTypes: append([]string(nil), DefaultMediaTypes...),
		CategoryPrimTypes:  append([]string(nil), DefaultPrimitiveTypes...),
		CategoryRespCodes:  httputil.StandardStatusCodeStrings(),
	}
}
