package validator

import (
	"fmt"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/httputil"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
)

// parameterAt is a named parameter together with its location in the document.
type parameterAt struct {
	path  string
	param *parser.Parameter
}

type bodyAt struct {
	path string
	body *parser.Body
}

type responseAt struct {
	path     string
	response *parser.Response
}

func checkHeaderType(s *session, p *parameterAt, field string) error {
	if !p.param.TypeDeclared {
		return nil
	}
	allowed, err := s.cfg.Get(config.CategoryPrimTypes)
	if err != nil {
		return err
	}
	if !allowed.Contains(p.param.Type) {
		s.report(issues.KindParameter, p.path, field,
			fmt.Sprintf("'%s' is not a valid primative parameter type", p.param.Type),
			withValue(p.param.Type), withContext(issues.ContextHeader))
	}
	return nil
}

func checkBodyMimeType(s *session, b *bodyAt, field string) error {
	if b.body.MimeType == "" {
		return nil
	}
	ok, err := s.supportedMediaType(b.body.MimeType)
	if err != nil {
		return err
	}
	if !ok {
		s.report(issues.KindParameter, b.path, field,
			fmt.Sprintf("Unsupported MIME Media Type: '%s'.", b.body.MimeType),
			withValue(b.body.MimeType), withContext(issues.ContextBody))
	}
	return nil
}

func checkBodySchema(s *session, b *bodyAt, field string) error {
	if b.body.Schema != nil && httputil.IsFormMediaType(b.body.MimeType) {
		reportFormBodyContent(s, b, field)
	}
	return nil
}

func checkBodyExample(s *session, b *bodyAt, field string) error {
	if b.body.Example != nil && httputil.IsFormMediaType(b.body.MimeType) {
		reportFormBodyContent(s, b, field)
	}
	return nil
}

func reportFormBodyContent(s *session, b *bodyAt, field string) {
	s.report(issues.KindParameter, b.path, field,
		"Body must define formParameters, not schema/example.",
		withContext(issues.ContextBody))
}

// checkBodyFormParameters treats an empty formParameters mapping as missing.
func checkBodyFormParameters(s *session, b *bodyAt, field string) error {
	if len(b.body.FormParameters) == 0 && httputil.IsFormMediaType(b.body.MimeType) {
		s.report(issues.KindParameter, b.path, field,
			fmt.Sprintf("Body with mime_type '%s' requires formParameters.", b.body.MimeType),
			withValue(b.body.MimeType), withContext(issues.ContextBody))
	}
	return nil
}

func checkResponseCode(s *session, r *responseAt, field string) error {
	code, ok := r.response.Code.(int)
	if !ok {
		s.report(issues.KindParameter, r.path, field,
			fmt.Sprintf("Response code '%v' must be an integer representing an HTTP code.", r.response.Code),
			withValue(r.response.Code), withContext(issues.ContextResponse))
		return nil
	}
	allowed, err := s.cfg.Get(config.CategoryRespCodes)
	if err != nil {
		return err
	}
	if !allowed.ContainsInt(code) {
		s.report(issues.KindParameter, r.path, field,
			fmt.Sprintf("'%d' not a valid HTTP response code.", code),
			withValue(code), withContext(issues.ContextResponse))
	}
	return nil
}
