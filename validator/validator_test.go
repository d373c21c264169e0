package validator

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
	"github.com/erraggy/ramltools/ramlerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorNew(t *testing.T) {
	v := New()
	require.NotNil(t, v)
	require.NotNil(t, v.Config)
	assert.NoError(t, config.Require(v.Config, config.RequiredCategories...))
}

func TestValidate_ValidFixture(t *testing.T) {
	result, err := New().Validate(filepath.Join("..", "testdata", "valid.raml"))
	require.NoError(t, err)

	for _, e := range result.Errors {
		t.Logf("unexpected: %s", e.String())
	}
	assert.True(t, result.Valid)
	assert.Zero(t, result.ErrorCount)
	assert.Equal(t, "Example Music API", result.Title)
	assert.Equal(t, "v1", result.Version)
	assert.Equal(t, "0.8", result.RAMLVersion)
	assert.Equal(t, 2, result.Stats.ResourceCount)
	assert.NoError(t, result.Err())
}

func TestValidate_InvalidFixture(t *testing.T) {
	result, err := New().Validate(filepath.Join("..", "testdata", "invalid.raml"))
	require.NoError(t, err)

	want := []string{
		"RAML File does not define an API title.",
		"RAML File's baseUri includes {version} parameter but no version is defined.",
		"'FTP' not a valid protocol for a RAML-defined API.",
		"The 'default' parameter is not set for base URI parameter 'region'",
		"'version' can only be defined in baseUriParameters.",
		"Unsupported MIME Media Type: 'awesome/sauce'.",
		"API Documentation requires a title.",
		"page must be either a number or integer to have minimum attribute set, not 'string'.",
		"Trait 'undefined' is assigned to '/songs' but is not defined in the root of the API.",
		"Too many resource types applied to '/songs'.",
		"'invalidType' is not a valid primative parameter type",
		"Response code 'foo' must be an integer representing an HTTP code.",
		"'299' not a valid HTTP response code.",
		"Body must define formParameters, not schema/example.",
		"Body with mime_type 'multipart/form-data' requires formParameters.",
		"Unsupported MIME Media Type: 'invalid/mediatype'.",
		"'12' needs to be a string referring to a trait, or a dictionary mapping parameter values to a trait",
		"Resource Type 'missing' is assigned to '/{songId}' but is not defined in the root of the API.",
		"songId must be a string type to have minLength attribute set, not 'integer'.",
	}
	assert.Equal(t, want, messages(result.Errors))
	assert.False(t, result.Valid)
	assert.Equal(t, len(want), result.ErrorCount)
	assert.Equal(t, 7, result.CountKind(KindRoot))
	assert.Equal(t, 4, result.CountKind(KindResource))
	assert.Equal(t, 8, result.CountKind(KindParameter))

	err = result.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ramlerrors.ErrValidation)
	assert.ErrorIs(t, err, ramlerrors.ErrRootNode)
	assert.ErrorIs(t, err, ramlerrors.ErrResourceNode)
	assert.ErrorIs(t, err, ramlerrors.ErrParameter)
	var verr *ramlerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, len(want))
}

func TestValidate_ParseFailure(t *testing.T) {
	_, err := New().Validate(filepath.Join("..", "testdata", "missing.raml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ramlerrors.ErrParse)
}

func TestValidateRoot_MissingCategoryIsFatal(t *testing.T) {
	v := &Validator{Config: config.New(map[config.Category][]string{
		config.CategoryProtocols:  {"HTTP"},
		config.CategoryMediaTypes: {"application/json"},
		config.CategoryPrimTypes:  {"string"},
	})}

	result, err := v.ValidateRoot(validRoot())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ramlerrors.ErrConfig)
	assert.NotErrorIs(t, err, ramlerrors.ErrValidation)
	var cerr *ramlerrors.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, string(config.CategoryRespCodes), cerr.Option)
}

func TestValidateRoot_Nil(t *testing.T) {
	_, err := New().ValidateRoot(nil)
	assert.Error(t, err)

	_, err = New().ValidateParsed(parser.ParseResult{})
	assert.Error(t, err)
}

func TestValidateRoot_Idempotent(t *testing.T) {
	root := parseRAML(t, "#%RAML 0.8\ntitle: x\nversion: v1\n/r:\n")
	first, err := New().ValidateRoot(root)
	require.NoError(t, err)
	second, err := New().ValidateRoot(root)
	require.NoError(t, err)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, []string{"RAML File does not define the baseUri."}, messages(first.Errors))
}

func TestCheck_RerunAppendsIdenticalRecord(t *testing.T) {
	s := newTestSession()
	root := validRoot()
	root.BaseURI = ""

	require.NoError(t, checkBaseURI(s, root, "baseUri"))
	require.NoError(t, checkBaseURI(s, root, "baseUri"))
	got := s.out.Issues()
	require.Len(t, got, 2)
	assert.Equal(t, got[0], got[1])
}

func TestValidateRoot_DeclarationsBeforeResources(t *testing.T) {
	// The resource precedes the declarations in the document; the check still
	// sees them because the tree is complete before validation starts.
	root := parseRAML(t, `#%RAML 0.8
title: Order
version: v1
baseUri: https://example.com
/r:
  type: base
  is: [t]
traits:
  - t:
resourceTypes:
  - base:
`)
	result, err := New().ValidateRoot(root)
	require.NoError(t, err)
	assert.Empty(t, messages(result.Errors))
}

func TestValidateRoot_ResourceTypesAndTraitsAreChecked(t *testing.T) {
	root := parseRAML(t, `#%RAML 0.8
title: Declarations
version: v1
baseUri: https://example.com
traits:
  - paged:
      headers:
        X-Page:
          type: float
resourceTypes:
  - collection:
      is: [missing]
      post?:
        body:
          multipart/form-data:
/r:
`)
	result, err := New().ValidateRoot(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"'float' is not a valid primative parameter type",
		"Trait 'missing' is assigned to 'collection' but is not defined in the root of the API.",
		"Body with mime_type 'multipart/form-data' requires formParameters.",
	}, messages(result.Errors))
	assert.Equal(t, "traits.paged.headers.X-Page", result.Errors[0].Path)
	assert.Equal(t, "resourceTypes.collection", result.Errors[1].Path)
	assert.Equal(t, "resourceTypes.collection.post.body.multipart/form-data", result.Errors[2].Path)
}

func TestValidateRoot_EmptyFormParameters(t *testing.T) {
	root := parseRAML(t, `#%RAML 0.8
title: Forms
version: v1
baseUri: https://example.com
/upload:
  post:
    body:
      multipart/form-data:
        formParameters: {}
`)
	result, err := New().ValidateRoot(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Body with mime_type 'multipart/form-data' requires formParameters.",
	}, messages(result.Errors))
}

func TestValidateRoot_ParameterAlternatives(t *testing.T) {
	root := parseRAML(t, `#%RAML 0.8
title: Alternatives
version: v1
baseUri: https://example.com
/things:
  get:
    queryParameters:
      since:
        - type: date
        - type: boolean
          pattern: a+
    headers:
      X-Since:
        - type: string
        - type: uuid
`)
	result, err := New().ValidateRoot(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"'uuid' is not a valid primative parameter type",
		"since must be a string type to have pattern attribute set, not 'boolean'.",
	}, messages(result.Errors))
	assert.Equal(t, "resources./things.get.headers.X-Since", result.Errors[0].Path)
	assert.Equal(t, "resources./things.get.queryParameters.since", result.Errors[1].Path)
}

func TestValidateRoot_CustomWhitelist(t *testing.T) {
	cfg, err := config.Parse([]byte(`
protocols: [HTTP, HTTPS]
media_types: [text/plain]
prim_types: [string]
resp_codes: [200]
`))
	require.NoError(t, err)

	root := parseRAML(t, `#%RAML 0.8
title: Custom
version: v1
baseUri: https://example.com
mediaType: text/plain
/r:
  get:
    headers:
      X-Count:
        type: integer
    responses:
      200:
      404:
`)
	result, err := (&Validator{Config: cfg}).ValidateRoot(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"'integer' is not a valid primative parameter type",
		"'404' not a valid HTTP response code.",
	}, messages(result.Errors))
}

func TestValidateWithOptions(t *testing.T) {
	t.Run("file path", func(t *testing.T) {
		result, err := ValidateWithOptions(WithFilePath("../testdata/valid.raml"))
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "../testdata/valid.raml", result.SourcePath)
	})

	t.Run("parsed with logger", func(t *testing.T) {
		parsed, err := parser.ParseWithOptions(parser.WithFilePath("../testdata/invalid.raml"))
		require.NoError(t, err)

		var buf bytes.Buffer
		logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		result, err := ValidateWithOptions(
			WithParsed(*parsed),
			WithConfig(config.Default()),
			WithLogger(logger),
		)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Contains(t, buf.String(), "validating resource")
		assert.Contains(t, buf.String(), "validation complete")
	})

	t.Run("no input", func(t *testing.T) {
		_, err := ValidateWithOptions()
		require.Error(t, err)
		assert.ErrorIs(t, err, ramlerrors.ErrConfig)
	})

	t.Run("two inputs", func(t *testing.T) {
		_, err := ValidateWithOptions(WithFilePath("a.raml"), WithParsed(parser.ParseResult{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := ValidateWithOptions(WithFilePath("a.raml"), WithConfig(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config provider cannot be nil")
	})
}

func TestValidationResult_ErrValid(t *testing.T) {
	var nilResult *ValidationResult
	assert.NoError(t, nilResult.Err())
	assert.NoError(t, (&ValidationResult{Valid: true}).Err())
}

func TestValidationError_String(t *testing.T) {
	e := ValidationError{Kind: issues.KindParameter, Path: "resources./r.get.headers.X", Context: issues.ContextHeader, Message: "bad"}
	assert.Equal(t, "✗ [parameter/header] resources./r.get.headers.X: bad", e.String())
}
