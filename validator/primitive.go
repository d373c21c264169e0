package validator

import (
	"fmt"

	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
)

// attrSet reports whether the named primitive attribute is present on p.
func attrSet(p *parser.Parameter, attr string) bool {
	switch attr {
	case "minimum":
		return p.Minimum != nil
	case "maximum":
		return p.Maximum != nil
	case "enum":
		return p.Enum != nil
	case "pattern":
		return p.Pattern != nil
	case "minLength":
		return p.MinLength != nil
	case "maxLength":
		return p.MaxLength != nil
	default:
		return false
	}
}

// paramType returns the declared type, or the RAML default for parameters
// built without one.
func paramType(p *parser.Parameter) string {
	if p.Type == "" {
		return parser.DefaultParameterType
	}
	return p.Type
}

// checkNumericAttr guards attributes only meaningful for integer and number parameters.
func checkNumericAttr(s *session, p *parameterAt, field string) error {
	if !attrSet(p.param, field) {
		return nil
	}
	if t := paramType(p.param); t != "integer" && t != "number" {
		s.report(issues.KindParameter, p.path, field,
			fmt.Sprintf("%s must be either a number or integer to have %s attribute set, not '%s'.", p.param.Name, field, t),
			withValue(t), withContext(issues.ContextBaseParameter))
	}
	return nil
}

// checkStringAttr guards attributes only meaningful for string parameters.
func checkStringAttr(s *session, p *parameterAt, field string) error {
	if !attrSet(p.param, field) {
		return nil
	}
	if t := paramType(p.param); t != "string" {
		s.report(issues.KindParameter, p.path, field,
			fmt.Sprintf("%s must be a string type to have %s attribute set, not '%s'.", p.param.Name, field, t),
			withValue(t), withContext(issues.ContextBaseParameter))
	}
	return nil
}
