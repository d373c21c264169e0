// Package issues provides the violation record type and the append-only
// collector that validation sessions report into.
package issues

import (
	"fmt"

	"github.com/erraggy/ramltools/ramlerrors"
)

// Kind identifies which part of the document a violation belongs to.
type Kind int

const (
	// KindRoot marks a violation in the root of the document.
	KindRoot Kind = iota
	// KindResource marks a violation in a resource, method or resource type.
	KindResource
	// KindParameter marks a violation in a parameter, body or response.
	KindParameter
)

// Parameter contexts name the sub-area a KindParameter issue was found in.
const (
	ContextHeader        = "header"
	ContextBody          = "body"
	ContextResponse      = "response"
	ContextBaseParameter = "BaseParameter"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindResource:
		return "resource"
	case KindParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// sentinel returns the ramlerrors sentinel matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindRoot:
		return ramlerrors.ErrRootNode
	case KindResource:
		return ramlerrors.ErrResourceNode
	case KindParameter:
		return ramlerrors.ErrParameter
	default:
		return nil
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue represents a single violation found during validation.
type Issue struct {
	// Kind is the node kind the violation was reported against
	Kind Kind `json:"kind" yaml:"kind"`
	// Path locates the node in the document (e.g., "resources./users.get.responses.200")
	Path string `json:"path" yaml:"path"`
	// Field is the node field whose check failed (e.g., "baseUri", "formParameters")
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Message is a human-readable description of the violation
	Message string `json:"message" yaml:"message"`
	// Context names the parameter sub-area ("header", "body", "response", "BaseParameter")
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted string representation of the issue.
func (i Issue) String() string {
	label := i.Kind.String()
	if i.Context != "" {
		label += "/" + i.Context
	}
	if i.Path == "" {
		return fmt.Sprintf("✗ [%s] %s", label, i.Message)
	}
	return fmt.Sprintf("✗ [%s] %s: %s", label, i.Path, i.Message)
}

// Error implements error. It returns the bare message so that an issue reads
// the same whether it is printed as a record or handled as an error.
func (i Issue) Error() string {
	return i.Message
}

// Is reports whether target is ErrValidation or the sentinel for the issue's kind.
func (i Issue) Is(target error) bool {
	if target == ramlerrors.ErrValidation {
		return true
	}
	s := i.Kind.sentinel()
	return s != nil && target == s
}
