package validator

import (
	"testing"

	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
	"github.com/erraggy/ramltools/ramlerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBody(t *testing.T, body *parser.Body) []ValidationError {
	t.Helper()
	s := newTestSession()
	require.NoError(t, apply(s, &bodyAt{path: "body", body: body}, bodyBindings))
	return s.out.Issues()
}

func TestBodyChecks(t *testing.T) {
	form := []*parser.Parameter{{Name: "name", Type: "string"}}
	tests := []struct {
		name string
		body *parser.Body
		want []string
	}{
		{
			name: "form body without form parameters",
			body: &parser.Body{MimeType: "multipart/form-data"},
			want: []string{"Body with mime_type 'multipart/form-data' requires formParameters."},
		},
		{
			name: "form body with form parameters",
			body: &parser.Body{MimeType: "multipart/form-data", FormParameters: form},
		},
		{
			name: "form body with empty form parameters",
			body: &parser.Body{MimeType: "multipart/form-data", FormParameters: []*parser.Parameter{}},
			want: []string{"Body with mime_type 'multipart/form-data' requires formParameters."},
		},
		{
			name: "form body with schema",
			body: &parser.Body{MimeType: "multipart/form-data", Schema: "song", FormParameters: form},
			want: []string{"Body must define formParameters, not schema/example."},
		},
		{
			name: "urlencoded body with example",
			body: &parser.Body{MimeType: "application/x-www-form-urlencoded", Example: "a=b", FormParameters: form},
			want: []string{"Body must define formParameters, not schema/example."},
		},
		{
			name: "form body with schema, example and no form parameters",
			body: &parser.Body{MimeType: "application/x-www-form-urlencoded", Schema: "s", Example: "e"},
			want: []string{
				"Body must define formParameters, not schema/example.",
				"Body must define formParameters, not schema/example.",
				"Body with mime_type 'application/x-www-form-urlencoded' requires formParameters.",
			},
		},
		{
			name: "json body with schema and example",
			body: &parser.Body{MimeType: "application/json", Schema: "{}", Example: "{}"},
		},
		{
			name: "unsupported media type",
			body: &parser.Body{MimeType: "invalid/mediatype"},
			want: []string{"Unsupported MIME Media Type: 'invalid/mediatype'."},
		},
		{
			name: "vendor json media type",
			body: &parser.Body{MimeType: "application/vnd.music.v1.json"},
		},
		{
			name: "no media type",
			body: &parser.Body{Schema: "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runBody(t, tt.body)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, messages(got))
			for _, e := range got {
				assert.Equal(t, issues.KindParameter, e.Kind)
				assert.Equal(t, issues.ContextBody, e.Context)
				assert.ErrorIs(t, e, ramlerrors.ErrParameter)
			}
		})
	}
}

func TestCheckResponseCode(t *testing.T) {
	tests := []struct {
		name string
		code any
		want string
	}{
		{"whitelisted", 200, ""},
		{"string code", "foo", "Response code 'foo' must be an integer representing an HTTP code."},
		{"numeric string", "200", "Response code '200' must be an integer representing an HTTP code."},
		{"unknown code", 999, "'999' not a valid HTTP response code."},
		{"unassigned code", 299, "'299' not a valid HTTP response code."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			at := &responseAt{path: "responses", response: &parser.Response{Code: tt.code}}

			require.NoError(t, checkResponseCode(s, at, "code"))
			got := s.out.Issues()
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
			assert.Equal(t, issues.ContextResponse, got[0].Context)
		})
	}
}

func TestCheckHeaderType(t *testing.T) {
	tests := []struct {
		name  string
		param *parser.Parameter
		want  string
	}{
		{"valid type", &parser.Parameter{Name: "X", Type: "integer", TypeDeclared: true}, ""},
		{"undeclared type", &parser.Parameter{Name: "X", Type: parser.DefaultParameterType}, ""},
		{"invalid type", &parser.Parameter{Name: "X", Type: "invalidType", TypeDeclared: true}, "'invalidType' is not a valid primative parameter type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			require.NoError(t, checkHeaderType(s, &parameterAt{path: "headers.X", param: tt.param}, "type"))
			got := s.out.Issues()
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
			assert.Equal(t, issues.ContextHeader, got[0].Context)
		})
	}
}
