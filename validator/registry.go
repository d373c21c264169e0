package validator

import (
	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
)

// session carries the collaborators of one validation pass. Every check
// receives it explicitly; no check reaches shared state.
type session struct {
	cfg config.Provider
	out *issues.Collector
	log parser.Logger
}

func newSession(cfg config.Provider, out *issues.Collector, log parser.Logger) *session {
	return &session{cfg: cfg, out: out, log: log}
}

// check validates one field of a node of type N. It appends at most one
// issue and returns an error only for fatal configuration problems.
type check[N any] func(s *session, node N, field string) error

// binding ties a check to the field it guards.
type binding[N any] struct {
	field string
	check check[N]
}

// apply runs each binding in order, stopping only on a fatal error.
func apply[N any](s *session, node N, bindings []binding[N]) error {
	for _, b := range bindings {
		if err := b.check(s, node, b.field); err != nil {
			return err
		}
	}
	return nil
}

// rootBindings lists the root checks in the order they run.
var rootBindings = []binding[*parser.RootNode]{
	{"title", checkTitle},
	{"version", checkVersion},
	{"protocols", checkProtocols},
	{"baseUri", checkBaseURI},
	{"baseUriParameters", checkBaseURIParameters},
	{"uriParameters", checkURIParameters},
	{"mediaType", checkMediaType},
	{"documentation", checkDocumentation},
	{"schemas", checkSchemas},
	{"securedBy", checkSecuredBy},
	{"resources", checkResources},
}

// resourceBindings apply to resources, methods and resource types.
var resourceBindings = []binding[*assignee]{
	{"is", checkAssignedTraits},
	{"type", checkAssignedResourceType},
}

// headerBindings run before the primitive checks of every header.
var headerBindings = []binding[*parameterAt]{
	{"type", checkHeaderType},
}

var bodyBindings = []binding[*bodyAt]{
	{"mimeType", checkBodyMimeType},
	{"schema", checkBodySchema},
	{"example", checkBodyExample},
	{"formParameters", checkBodyFormParameters},
}

var responseBindings = []binding[*responseAt]{
	{"code", checkResponseCode},
}

// primitiveBindings run for every named parameter, in attribute order.
var primitiveBindings = []binding[*parameterAt]{
	{"minimum", checkNumericAttr},
	{"maximum", checkNumericAttr},
	{"enum", checkStringAttr},
	{"pattern", checkStringAttr},
	{"minLength", checkStringAttr},
	{"maxLength", checkStringAttr},
}

// report appends one issue to the session's collector.
func (s *session) report(kind issues.Kind, path, field, message string, opts ...func(*ValidationError)) {
	issue := ValidationError{
		Kind:    kind,
		Path:    path,
		Field:   field,
		Message: message,
	}
	for _, opt := range opts {
		opt(&issue)
	}
	s.log.Debug("violation", "kind", kind.String(), "path", path, "field", field, "message", message)
	s.out.Append(issue)
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withContext sets the parameter Context on a ValidationError.
func withContext(context string) func(*ValidationError) {
	return func(e *ValidationError) { e.Context = context }
}
