package validator

import (
	"fmt"
	"slices"

	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/parser"
)

// assignee is the surface shared by resources, methods and resource types:
// something that can be assigned traits and a resource type.
type assignee struct {
	// path locates the node in issues
	path string
	// label names the node in trait messages (a resource's absolute URI)
	label       string
	displayName string
	traits      []parser.Reference
	types       []parser.Reference
	root        *parser.RootNode
}

func resourceAssignee(r *parser.ResourceNode) *assignee {
	return &assignee{
		path:        resourcePath(r),
		label:       r.Path,
		displayName: r.DisplayName,
		traits:      r.Traits,
		types:       r.Type,
		root:        r.Root,
	}
}

func methodAssignee(path, label string, m *parser.MethodNode, root *parser.RootNode) *assignee {
	return &assignee{
		path:        path,
		label:       label,
		displayName: m.Method,
		traits:      m.Traits,
		root:        root,
	}
}

func resourceTypeAssignee(rt *parser.ResourceTypeNode) *assignee {
	return &assignee{
		path:        resourceTypePath(rt),
		label:       rt.Name,
		displayName: rt.DisplayName,
		traits:      rt.Traits,
		types:       rt.Type,
		root:        rt.Root,
	}
}

func checkAssignedTraits(s *session, a *assignee, field string) error {
	if len(a.traits) == 0 {
		return nil
	}
	declared := declaredNames(a.root, "traits")
	if len(declared) == 0 {
		s.report(issues.KindResource, a.path, field,
			"Trying to assign traits that are not defined in the root of the API.")
		return nil
	}
	for _, ref := range a.traits {
		name, ok := parser.RefName(ref)
		if !ok {
			s.report(issues.KindResource, a.path, field,
				fmt.Sprintf("'%s' needs to be a string referring to a trait, or a dictionary mapping parameter values to a trait", ref),
				withValue(ref.String()))
			return nil
		}
		if !slices.Contains(declared, name) {
			s.report(issues.KindResource, a.path, field,
				fmt.Sprintf("Trait '%s' is assigned to '%s' but is not defined in the root of the API.", name, a.label),
				withValue(name))
			return nil
		}
	}
	return nil
}

func checkAssignedResourceType(s *session, a *assignee, field string) error {
	switch len(a.types) {
	case 0:
		return nil
	case 1:
	default:
		s.report(issues.KindResource, a.path, field,
			fmt.Sprintf("Too many resource types applied to '%s'.", a.displayName))
		return nil
	}

	ref := a.types[0]
	name, ok := parser.RefName(ref)
	if !ok {
		s.report(issues.KindResource, a.path, field,
			fmt.Sprintf("'%s' needs to be a string referring to a resource type, or a dictionary mapping parameter values to a resource type", ref),
			withValue(ref.String()))
		return nil
	}
	if !slices.Contains(declaredNames(a.root, "resourceTypes"), name) {
		s.report(issues.KindResource, a.path, field,
			fmt.Sprintf("Resource Type '%s' is assigned to '%s' but is not defined in the root of the API.", name, a.displayName),
			withValue(name))
	}
	return nil
}

// declaredNames returns the trait or resource type names the root declares.
// The names come from the root's raw mapping, which holds either a list of
// single-key maps or a plain mapping. Trees built without a raw mapping fall
// back to the decoded declarations.
func declaredNames(root *parser.RootNode, key string) []string {
	if root == nil {
		return nil
	}
	if raw, ok := root.Raw[key]; ok {
		return rawNames(raw)
	}

	var names []string
	switch key {
	case "traits":
		for _, t := range root.Traits {
			names = append(names, t.Name)
		}
	case "resourceTypes":
		for _, rt := range root.ResourceTypes {
			names = append(names, rt.Name)
		}
	}
	return names
}

func rawNames(raw any) []string {
	var names []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			names = append(names, rawNames(item)...)
		}
	case map[string]any:
		for name := range v {
			names = append(names, name)
		}
	case map[any]any:
		for name := range v {
			if s, ok := name.(string); ok {
				names = append(names, s)
			}
		}
	}
	return names
}
