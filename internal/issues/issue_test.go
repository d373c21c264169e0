package issues

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/erraggy/ramltools/ramlerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name: "root issue",
			issue: Issue{
				Kind:    KindRoot,
				Path:    "baseUri",
				Message: "RAML File does not define the baseUri.",
			},
			expected: "✗ [root] baseUri: RAML File does not define the baseUri.",
		},
		{
			name: "parameter issue with context",
			issue: Issue{
				Kind:    KindParameter,
				Path:    "resources./users.post.body.multipart/form-data",
				Message: "Body must define formParameters, not schema/example.",
				Context: ContextBody,
			},
			expected: "✗ [parameter/body] resources./users.post.body.multipart/form-data: Body must define formParameters, not schema/example.",
		},
		{
			name:     "issue without path",
			issue:    Issue{Kind: KindResource, Message: "Too many resource types applied to '/foo'."},
			expected: "✗ [resource] Too many resource types applied to '/foo'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}

func TestIssueError(t *testing.T) {
	issue := Issue{Kind: KindParameter, Message: "'299' not a valid HTTP response code.", Context: ContextResponse}
	var err error = issue

	assert.Equal(t, "'299' not a valid HTTP response code.", err.Error())
	assert.True(t, errors.Is(err, ramlerrors.ErrValidation))
	assert.True(t, errors.Is(err, ramlerrors.ErrParameter))
	assert.False(t, errors.Is(err, ramlerrors.ErrRootNode))
	assert.False(t, errors.Is(err, ramlerrors.ErrConfig))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "root", KindRoot.String())
	assert.Equal(t, "resource", KindResource.String())
	assert.Equal(t, "parameter", KindParameter.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestIssueJSON(t *testing.T) {
	data, err := json.Marshal(Issue{Kind: KindResource, Path: "resources./foo", Field: "traits", Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"resource","path":"resources./foo","field":"traits","message":"m"}`, string(data))
}
