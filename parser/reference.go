package parser

import "fmt"

// Reference is a trait, resource type or security scheme reference.
//
// It is one of NameRef, ParameterizedRef or MalformedRef. Consumers use a
// type switch to tell them apart.
type Reference interface {
	// String renders the reference the way it appeared in the document.
	String() string
	isReference()
}

// NameRef references a declaration by bare name ("secured").
type NameRef string

// ParameterizedRef references a declaration by name and supplies parameter
// values ({paged: {maxPages: 10}}).
type ParameterizedRef struct {
	Name   string
	Params map[string]any
}

// MalformedRef is a reference value of an unsupported shape (numbers, nested
// lists, maps with several keys). Value holds the decoded value.
type MalformedRef struct {
	Value any
}

func (NameRef) isReference()          {}
func (ParameterizedRef) isReference() {}
func (MalformedRef) isReference()     {}

// String implements Reference.
func (r NameRef) String() string { return string(r) }

// String implements Reference.
func (r ParameterizedRef) String() string {
	return fmt.Sprintf("%v", map[string]any{r.Name: r.Params})
}

// String implements Reference.
func (r MalformedRef) String() string { return fmt.Sprintf("%v", r.Value) }

// RefName returns the referenced name and true for NameRef and
// ParameterizedRef, and "" and false for MalformedRef.
func RefName(r Reference) (string, bool) {
	switch ref := r.(type) {
	case NameRef:
		return string(ref), true
	case ParameterizedRef:
		return ref.Name, true
	default:
		return "", false
	}
}
