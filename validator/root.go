package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/httputil"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
)

// versionPlaceholder is the baseUri template token bound to the API version.
const versionPlaceholder = "{version}"

func checkTitle(s *session, root *parser.RootNode, field string) error {
	if root.Title == "" {
		s.report(issues.KindRoot, field, field, "RAML File does not define an API title.")
	}
	return nil
}

func checkVersion(s *session, root *parser.RootNode, field string) error {
	if root.Version != "" {
		return nil
	}
	if strings.Contains(root.BaseURI, versionPlaceholder) {
		s.report(issues.KindRoot, field, field,
			"RAML File's baseUri includes {version} parameter but no version is defined.",
			withValue(root.BaseURI))
		return nil
	}
	s.report(issues.KindRoot, field, field, "RAML File does not define an API version.")
	return nil
}

func checkProtocols(s *session, root *parser.RootNode, field string) error {
	allowed, err := s.cfg.Get(config.CategoryProtocols)
	if err != nil {
		return err
	}
	for _, p := range root.Protocols {
		normalized := config.NormalizeProtocol(p)
		if !allowed.Contains(normalized) {
			s.report(issues.KindRoot, field, field,
				fmt.Sprintf("'%s' not a valid protocol for a RAML-defined API.", p),
				withValue(p))
			return nil
		}
	}
	return nil
}

func checkBaseURI(s *session, root *parser.RootNode, field string) error {
	if root.BaseURI == "" {
		s.report(issues.KindRoot, field, field, "RAML File does not define the baseUri.")
	}
	return nil
}

func checkBaseURIParameters(s *session, root *parser.RootNode, field string) error {
	for _, p := range root.BaseURIParameters {
		if p.Default == nil {
			s.report(issues.KindRoot, field+"."+p.Name, field,
				fmt.Sprintf("The 'default' parameter is not set for base URI parameter '%s'", p.Name))
			return nil
		}
	}
	return nil
}

func checkURIParameters(s *session, root *parser.RootNode, field string) error {
	for _, p := range root.URIParameters {
		if p.Name == "version" {
			s.report(issues.KindRoot, field+"."+p.Name, field,
				"'version' can only be defined in baseUriParameters.")
			return nil
		}
	}
	return nil
}

func checkMediaType(s *session, root *parser.RootNode, field string) error {
	if root.MediaType == "" {
		return nil
	}
	ok, err := s.supportedMediaType(root.MediaType)
	if err != nil {
		return err
	}
	if !ok {
		s.report(issues.KindRoot, field, field,
			fmt.Sprintf("Unsupported MIME Media Type: '%s'.", root.MediaType),
			withValue(root.MediaType))
	}
	return nil
}

func checkDocumentation(s *session, root *parser.RootNode, field string) error {
	for i, doc := range root.Documentation {
		path := fmt.Sprintf("%s[%d]", field, i)
		if doc.Title == nil {
			s.report(issues.KindRoot, path, field, "API Documentation requires a title.")
			return nil
		}
		if doc.Content == nil {
			s.report(issues.KindRoot, path, field, "API Documentation requires content defined.")
			return nil
		}
	}
	return nil
}

// checkSchemas is reserved for schema checks and never reports.
func checkSchemas(*session, *parser.RootNode, string) error { return nil }

// checkSecuredBy is reserved for security scheme checks and never reports.
func checkSecuredBy(*session, *parser.RootNode, string) error { return nil }

func checkResources(s *session, root *parser.RootNode, field string) error {
	if len(root.Resources) == 0 {
		s.report(issues.KindRoot, field, field, "API does not define any resources.")
	}
	return nil
}

// supportedMediaType reports whether mediaType is whitelisted or belongs to
// the JSON/XML family.
func (s *session) supportedMediaType(mediaType string) (bool, error) {
	allowed, err := s.cfg.Get(config.CategoryMediaTypes)
	if err != nil {
		return false, err
	}
	return allowed.Contains(mediaType) || httputil.MatchesStructuredMediaType(mediaType), nil
}
