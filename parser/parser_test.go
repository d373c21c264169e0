package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/erraggy/ramltools/ramlerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) *ParseResult {
	t.Helper()
	result, err := New().ParseBytes([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, result.Root)
	return result
}

func TestParse_ValidFixture(t *testing.T) {
	result, err := New().Parse("../testdata/valid.raml")
	require.NoError(t, err)

	root := result.Root
	assert.Equal(t, "0.8", result.RAMLVersion)
	assert.Equal(t, "../testdata/valid.raml", result.SourcePath)
	assert.Equal(t, "Example Music API", root.Title)
	assert.Equal(t, "v1", root.Version)
	assert.Equal(t, "https://{domainName}.example.com/{version}", root.BaseURI)
	assert.Equal(t, []string{"HTTPS"}, root.Protocols)
	assert.Equal(t, "application/json", root.MediaType)

	require.Len(t, root.BaseURIParameters, 1)
	assert.Equal(t, "domainName", root.BaseURIParameters[0].Name)
	assert.Equal(t, "api", root.BaseURIParameters[0].Default)
	assert.Equal(t, LocationBaseURI, root.BaseURIParameters[0].Location)

	require.Len(t, root.Documentation, 1)
	require.NotNil(t, root.Documentation[0].Title)
	assert.Equal(t, "Getting Started", *root.Documentation[0].Title)

	require.Len(t, root.Traits, 2)
	assert.Equal(t, "paged", root.Traits[0].Name)
	assert.Equal(t, "filterable", root.Traits[1].Name)
	require.Len(t, root.Traits[0].QueryParameters, 2)
	limit := root.Traits[0].QueryParameters[0]
	assert.Equal(t, "integer", limit.Type)
	require.NotNil(t, limit.Minimum)
	assert.InDelta(t, 1.0, *limit.Minimum, 0)

	require.Len(t, root.ResourceTypes, 1)
	rt := root.ResourceTypes[0]
	assert.Equal(t, "collection", rt.Name)
	require.Len(t, rt.Methods, 2)
	assert.Equal(t, "get", rt.Methods[0].Method)
	assert.True(t, rt.Methods[0].Optional)
	assert.Equal(t, []Reference{NameRef("paged")}, rt.Methods[0].Traits)

	require.Len(t, root.Resources, 1)
	playlists := root.Resources[0]
	assert.Equal(t, "/playlists", playlists.Path)
	assert.Equal(t, "Playlists", playlists.DisplayName)
	assert.Same(t, root, playlists.Root)
	assert.Equal(t, []Reference{NameRef("collection")}, playlists.Type)
	assert.Equal(t, []Reference{
		NameRef("paged"),
		ParameterizedRef{Name: "filterable", Params: map[string]any{"maxResults": 10}},
	}, playlists.Traits)

	require.Len(t, playlists.Resources, 1)
	child := playlists.Resources[0]
	assert.Equal(t, "/playlists/{playlistId}", child.Path)
	assert.Equal(t, "/{playlistId}", child.DisplayName)
	assert.Same(t, playlists, child.Parent)

	assert.Equal(t, DocumentStats{
		ResourceCount:     2,
		MethodCount:       3,
		TraitCount:        2,
		ResourceTypeCount: 1,
	}, result.Stats)
	assert.Positive(t, result.SourceSize)
}

func TestParse_BodiesAndResponses(t *testing.T) {
	result := mustParse(t, `#%RAML 0.8
title: Bodies
mediaType: application/json
/items:
  post:
    body:
      schema: item
    responses:
      200:
        body:
          application/xml:
            example: <item/>
      foo:
        description: text key
  put:
    body:
      multipart/form-data:
        formParameters: {}
      application/x-www-form-urlencoded:
`)
	res := result.Root.Resources[0]
	require.Len(t, res.Methods, 2)

	post := res.Methods[0]
	require.Len(t, post.Body, 1)
	assert.Equal(t, "application/json", post.Body[0].MimeType, "body without media type keys uses the root media type")
	assert.Equal(t, "item", post.Body[0].Schema)

	require.Len(t, post.Responses, 2)
	assert.Equal(t, 200, post.Responses[0].Code)
	assert.Equal(t, "foo", post.Responses[1].Code)
	require.Len(t, post.Responses[0].Body, 1)
	assert.Equal(t, "application/xml", post.Responses[0].Body[0].MimeType)
	assert.Equal(t, "<item/>", post.Responses[0].Body[0].Example)

	put := res.Methods[1]
	require.Len(t, put.Body, 2)
	assert.NotNil(t, put.Body[0].FormParameters, "an empty formParameters mapping is still declared")
	assert.Empty(t, put.Body[0].FormParameters)
	assert.Nil(t, put.Body[1].FormParameters)
}

func TestParse_Parameters(t *testing.T) {
	result := mustParse(t, `#%RAML 0.8
title: Params
/things/{id}:
  uriParameters:
    id:
  get:
    queryParameters:
      sort:
        enum: [asc, desc]
        pattern: ^a
        minLength: 1
        maxLength: 4
        required: true
        repeat: true
      count:
        type: number
        maximum: 2.5
`)
	res := result.Root.Resources[0]
	require.Len(t, res.URIParameters, 1)
	id := res.URIParameters[0]
	assert.Equal(t, DefaultParameterType, id.Type)
	assert.False(t, id.TypeDeclared)
	assert.True(t, id.Required, "URI parameters are required by default")

	query := res.Methods[0].QueryParameters
	require.Len(t, query, 2)
	sort := query[0]
	assert.Equal(t, []any{"asc", "desc"}, sort.Enum)
	require.NotNil(t, sort.Pattern)
	assert.Equal(t, "^a", *sort.Pattern)
	require.NotNil(t, sort.MinLength)
	assert.Equal(t, 1, *sort.MinLength)
	require.NotNil(t, sort.MaxLength)
	assert.Equal(t, 4, *sort.MaxLength)
	assert.True(t, sort.Required)
	assert.True(t, sort.Repeat)

	count := query[1]
	assert.Equal(t, "number", count.Type)
	assert.True(t, count.TypeDeclared)
	require.NotNil(t, count.Maximum)
	assert.InDelta(t, 2.5, *count.Maximum, 0)
	assert.Nil(t, count.Minimum)
}

func TestParse_ParameterAlternatives(t *testing.T) {
	result := mustParse(t, `#%RAML 0.8
title: Params
/things:
  get:
    queryParameters:
      since:
        - type: date
        - type: boolean
          pattern: a+
`)
	assert.Empty(t, result.Warnings)
	query := result.Root.Resources[0].Methods[0].QueryParameters
	require.Len(t, query, 1)
	since := query[0]
	assert.Equal(t, "date", since.Type)
	assert.Equal(t, LocationQuery, since.Location)
	require.Len(t, since.Alternatives, 1)
	alt := since.Alternatives[0]
	assert.Equal(t, "since", alt.Name)
	assert.Equal(t, "boolean", alt.Type)
	assert.Equal(t, LocationQuery, alt.Location)
	require.NotNil(t, alt.Pattern)
	assert.Equal(t, "a+", *alt.Pattern)
}

func TestParse_References(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		traits   []Reference
		types    []Reference
	}{
		{
			name:     "name and parameterized traits",
			resource: "is: [a, {b: {x: 1}}]",
			traits:   []Reference{NameRef("a"), ParameterizedRef{Name: "b", Params: map[string]any{"x": 1}}},
		},
		{
			name:     "integer trait is malformed",
			resource: "is: [12]",
			traits:   []Reference{MalformedRef{Value: 12}},
		},
		{
			name:     "scalar is value is malformed",
			resource: "is: a",
			traits:   []Reference{MalformedRef{Value: "a"}},
		},
		{
			name:     "multi-key map trait is malformed",
			resource: "is: [{a: {}, b: {}}]",
			traits:   []Reference{MalformedRef{Value: map[string]any{"a": map[string]any{}, "b": map[string]any{}}}},
		},
		{
			name:     "string type",
			resource: "type: collection",
			types:    []Reference{NameRef("collection")},
		},
		{
			name:     "parameterized type",
			resource: "type: {collection: {item: song}}",
			types:    []Reference{ParameterizedRef{Name: "collection", Params: map[string]any{"item": "song"}}},
		},
		{
			name:     "list of types",
			resource: "type: [a, b]",
			types:    []Reference{NameRef("a"), NameRef("b")},
		},
		{
			name:     "integer type is malformed",
			resource: "type: 5",
			types:    []Reference{MalformedRef{Value: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "#%RAML 0.8\ntitle: Refs\n/r:\n  " + tt.resource + "\n"
			res := mustParse(t, doc).Root.Resources[0]
			assert.Equal(t, tt.traits, res.Traits)
			assert.Equal(t, tt.types, res.Type)
		})
	}
}

func TestParse_DeclarationsAsMapping(t *testing.T) {
	result := mustParse(t, `#%RAML 0.8
title: Mapping declarations
traits:
  secured:
    headers:
      Authorization:
resourceTypes:
  base:
    get:
`)
	require.Len(t, result.Root.Traits, 1)
	assert.Equal(t, "secured", result.Root.Traits[0].Name)
	require.Len(t, result.Root.Traits[0].Headers, 1)
	require.Len(t, result.Root.ResourceTypes, 1)
	assert.Equal(t, "base", result.Root.ResourceTypes[0].Name)
	assert.Same(t, result.Root, result.Root.ResourceTypes[0].Root)
}

func TestParse_Includes(t *testing.T) {
	result := mustParse(t, `#%RAML 0.8
title: Includes
documentation:
  - title: Intro
    content: !include intro.md
/r:
`)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "intro.md")
	assert.Equal(t, "intro.md", *result.Root.Documentation[0].Content)
}

func TestParse_MissingHeaderWarns(t *testing.T) {
	result := mustParse(t, "title: No header\n/r:\n")
	assert.Empty(t, result.RAMLVersion)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "#%RAML")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{"empty document", "", "document is empty"},
		{"invalid yaml", "title: [unclosed", "failed to parse YAML"},
		{"scalar root", "just a string", "document root must be a mapping"},
		{"documentation not a list", "title: x\ndocumentation: nope\n", "Error parsing documentation"},
		{"trait declared as string", "title: x\ntraits:\n  - paged: nope\n", "Error parsing trait"},
		{"trait list of strings", "title: x\ntraits: [paged]\n", "Error parsing trait"},
		{"bad minLength", "title: x\n/r:\n  get:\n    queryParameters:\n      q:\n        minLength: abc\n", "invalid value for 'minLength'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ramlerrors.ErrParse))
			var perr *ramlerrors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, tt.message)
		})
	}
}

func TestParse_FileErrors(t *testing.T) {
	_, err := New().Parse("../testdata/does-not-exist.raml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ramlerrors.ErrParse)

	p := &Parser{MaxFileSize: 10}
	_, err = p.Parse("../testdata/valid.raml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestParseReader_SizeLimit(t *testing.T) {
	p := &Parser{MaxFileSize: 16}
	_, err := p.ParseReader(strings.NewReader("title: " + strings.Repeat("x", 64)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit")

	result, err := New().ParseReader(strings.NewReader("#%RAML 0.8\ntitle: ok\n"))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.raml", result.SourcePath)
}

func TestDetectRAMLVersion(t *testing.T) {
	assert.Equal(t, "0.8", detectRAMLVersion([]byte("#%RAML 0.8\ntitle: x")))
	assert.Equal(t, "1.0", detectRAMLVersion([]byte("  #%RAML 1.0  ")))
	assert.Empty(t, detectRAMLVersion([]byte("title: x")))
}

func TestGetDocumentStats_Nil(t *testing.T) {
	assert.Equal(t, DocumentStats{}, GetDocumentStats(nil))
}
