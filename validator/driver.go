package validator

import (
	"fmt"

	"github.com/erraggy/ramltools/config"
	"github.com/erraggy/ramltools/parser"
)

// run validates a complete document tree.
//
// The walk order is fixed: root fields, root parameters, traits, resource
// types, then resources depth first. Root declarations are therefore in
// place before any resource check consults them, and a re-run over the same
// tree reports the same issues in the same order.
func (s *session) run(root *parser.RootNode) error {
	if err := config.Require(s.cfg, config.RequiredCategories...); err != nil {
		return err
	}

	s.log.Debug("validating root", "title", root.Title)
	if err := apply(s, root, rootBindings); err != nil {
		return err
	}
	if err := s.parameters("baseUriParameters", root.BaseURIParameters); err != nil {
		return err
	}
	if err := s.parameters("uriParameters", root.URIParameters); err != nil {
		return err
	}

	for _, t := range root.Traits {
		s.log.Debug("validating trait", "name", t.Name)
		if err := s.operation("traits."+t.Name, &t.Operation); err != nil {
			return err
		}
	}
	for _, rt := range root.ResourceTypes {
		if err := s.resourceType(rt); err != nil {
			return err
		}
	}
	for _, r := range root.Resources {
		if err := s.resource(r); err != nil {
			return err
		}
	}
	return nil
}

func resourcePath(r *parser.ResourceNode) string {
	return "resources." + r.Path
}

func resourceTypePath(rt *parser.ResourceTypeNode) string {
	return "resourceTypes." + rt.Name
}

func (s *session) resourceType(rt *parser.ResourceTypeNode) error {
	path := resourceTypePath(rt)
	s.log.Debug("validating resource type", "name", rt.Name)

	if err := apply(s, resourceTypeAssignee(rt), resourceBindings); err != nil {
		return err
	}
	if err := s.parameters(path+".uriParameters", rt.URIParameters); err != nil {
		return err
	}
	if err := s.parameters(path+".baseUriParameters", rt.BaseURIParameters); err != nil {
		return err
	}
	return s.methods(path, rt.Name, rt.Methods, rt.Root)
}

func (s *session) resource(r *parser.ResourceNode) error {
	path := resourcePath(r)
	s.log.Debug("validating resource", "path", r.Path)

	if err := apply(s, resourceAssignee(r), resourceBindings); err != nil {
		return err
	}
	if err := s.parameters(path+".uriParameters", r.URIParameters); err != nil {
		return err
	}
	if err := s.parameters(path+".baseUriParameters", r.BaseURIParameters); err != nil {
		return err
	}
	if err := s.methods(path, r.Path, r.Methods, r.Root); err != nil {
		return err
	}
	for _, child := range r.Resources {
		if err := s.resource(child); err != nil {
			return err
		}
	}
	return nil
}

// methods validates each method's trait assignments and operation.
// label is the owner's name as it appears in trait messages.
func (s *session) methods(owner, label string, methods []*parser.MethodNode, root *parser.RootNode) error {
	for _, m := range methods {
		path := owner + "." + m.Method
		if err := apply(s, methodAssignee(path, label, m, root), resourceBindings); err != nil {
			return err
		}
		if err := s.operation(path, &m.Operation); err != nil {
			return err
		}
	}
	return nil
}

// operation validates the parameters, bodies and responses of a method or trait.
func (s *session) operation(path string, op *parser.Operation) error {
	if err := s.headers(path+".headers", op.Headers); err != nil {
		return err
	}
	if err := s.parameters(path+".queryParameters", op.QueryParameters); err != nil {
		return err
	}
	if err := s.parameters(path+".baseUriParameters", op.BaseURIParameters); err != nil {
		return err
	}
	if err := s.bodies(path+".body", op.Body); err != nil {
		return err
	}
	for _, resp := range op.Responses {
		rp := fmt.Sprintf("%s.responses.%v", path, resp.Code)
		if err := apply(s, &responseAt{path: rp, response: resp}, responseBindings); err != nil {
			return err
		}
		if err := s.headers(rp+".headers", resp.Headers); err != nil {
			return err
		}
		if err := s.bodies(rp+".body", resp.Body); err != nil {
			return err
		}
	}
	return nil
}

// declarations yields p followed by its alternative declarations.
func declarations(p *parser.Parameter) []*parser.Parameter {
	return append([]*parser.Parameter{p}, p.Alternatives...)
}

func (s *session) headers(path string, params []*parser.Parameter) error {
	for _, p := range params {
		for _, decl := range declarations(p) {
			at := &parameterAt{path: path + "." + p.Name, param: decl}
			if err := apply(s, at, headerBindings); err != nil {
				return err
			}
			if err := apply(s, at, primitiveBindings); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) parameters(path string, params []*parser.Parameter) error {
	for _, p := range params {
		for _, decl := range declarations(p) {
			if err := apply(s, &parameterAt{path: path + "." + p.Name, param: decl}, primitiveBindings); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) bodies(path string, bodies []*parser.Body) error {
	for _, b := range bodies {
		bp := path
		if b.MimeType != "" {
			bp += "." + b.MimeType
		}
		if err := apply(s, &bodyAt{path: bp, body: b}, bodyBindings); err != nil {
			return err
		}
		if err := s.parameters(bp+".formParameters", b.FormParameters); err != nil {
			return err
		}
	}
	return nil
}
