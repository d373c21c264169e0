// Package testutil provides shared RAML fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/erraggy/ramltools/parser"
)

// MinimalRAML is the smallest document that passes validation with the
// default whitelists.
const MinimalRAML = `#%RAML 0.8
title: Ping API
version: v1
baseUri: https://api.example.com
/ping:
  get:
`

// FixturePath returns the absolute path of a file in the repository's
// testdata directory.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to locate testutil package")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
}

// WriteTempFile writes content to name inside a fresh temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// WriteTempRAML writes a RAML document to a temporary "api.raml".
func WriteTempRAML(t *testing.T, content string) string {
	t.Helper()
	return WriteTempFile(t, "api.raml", content)
}

// NewMinimalRoot returns the tree MinimalRAML parses to.
func NewMinimalRoot() *parser.RootNode {
	ping := &parser.ResourceNode{
		Name:        "/ping",
		Path:        "/ping",
		DisplayName: "/ping",
		Methods:     []*parser.MethodNode{{Method: "get"}},
	}
	return &parser.RootNode{
		Title:     "Ping API",
		Version:   "v1",
		BaseURI:   "https://api.example.com",
		Resources: []*parser.ResourceNode{ping},
	}
}
