package validator

import (
	"testing"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
	"github.com/stretchr/testify/require"
)

// newTestSession returns a session over the default whitelists.
func newTestSession() *session {
	return newSession(config.Default(), issues.NewCollector(0), parser.NopLogger{})
}

// validRoot returns a root that passes every root check.
func validRoot() *parser.RootNode {
	title, content := "Intro", "Read me"
	root := &parser.RootNode{
		Title:         "API",
		Version:       "v1",
		BaseURI:       "https://api.example.com/{version}",
		Protocols:     []string{"HTTPS"},
		MediaType:     "application/json",
		Documentation: []*parser.Documentation{{Title: &title, Content: &content}},
	}
	root.Resources = []*parser.ResourceNode{{Name: "/r", Path: "/r", DisplayName: "/r", Root: root}}
	return root
}

func ptr[T any](v T) *T { return &v }

func parseRAML(t *testing.T, doc string) *parser.RootNode {
	t.Helper()
	result, err := parser.New().ParseBytes([]byte(doc))
	require.NoError(t, err)
	return result.Root
}

func messages(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
