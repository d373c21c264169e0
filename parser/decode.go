package parser

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/ramltools/ramlerrors"
	"go.yaml.in/yaml/v4"
)

// Document keys the decoder understands. Unknown keys are kept in Raw only.
const (
	keyTitle             = "title"
	keyVersion           = "version"
	keyBaseURI           = "baseUri"
	keyProtocols         = "protocols"
	keyMediaType         = "mediaType"
	keyBaseURIParameters = "baseUriParameters"
	keyURIParameters     = "uriParameters"
	keyDocumentation     = "documentation"
	keySchemas           = "schemas"
	keySecuredBy         = "securedBy"
	keyTraits            = "traits"
	keyResourceTypes     = "resourceTypes"
	keyDisplayName       = "displayName"
	keyDescription       = "description"
	keyUsage             = "usage"
	keyIs                = "is"
	keyType              = "type"
	keyHeaders           = "headers"
	keyQueryParameters   = "queryParameters"
	keyFormParameters    = "formParameters"
	keyBody              = "body"
	keyResponses         = "responses"
	keySchema            = "schema"
	keyExample           = "example"
	keyContent           = "content"

	includeTag = "!include"
	strTag     = "!!str"
	intTag     = "!!int"
	nullTag    = "!!null"
)

// decoder turns a YAML node tree into RAML nodes.
type decoder struct {
	source   string
	warnings *[]string
	root     *RootNode
}

func (d *decoder) errorAt(n *yaml.Node, format string, args ...any) error {
	return &ramlerrors.ParseError{
		Path:    d.source,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) warn(n *yaml.Node, format string, args ...any) {
	*d.warnings = append(*d.warnings, fmt.Sprintf("line %d: %s", n.Line, fmt.Sprintf(format, args...)))
}

// decodeRoot decodes the top-level mapping. Declarations (traits, resource types)
// are decoded before resources so every resource sees a complete root.
func (d *decoder) decodeRoot(n *yaml.Node) (*RootNode, error) {
	d.collectIncludes(n)

	root := &RootNode{Raw: rawMap(n)}
	d.root = root

	var resourceKeys []int
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, deref(n.Content[i+1])
		var err error
		switch {
		case key == keyTitle:
			root.Title = scalarString(val)
		case key == keyVersion:
			root.Version = scalarString(val)
		case key == keyBaseURI:
			root.BaseURI = scalarString(val)
		case key == keyProtocols:
			root.Protocols, err = d.stringList(val, key)
		case key == keyMediaType:
			root.MediaType = scalarString(val)
		case key == keyBaseURIParameters:
			root.BaseURIParameters, err = d.parameters(val, LocationBaseURI)
		case key == keyURIParameters:
			root.URIParameters, err = d.parameters(val, LocationURI)
		case key == keyDocumentation:
			root.Documentation, err = d.documentation(val)
		case key == keySchemas:
			root.Schemas, err = d.schemas(val)
		case key == keySecuredBy:
			root.SecuredBy = d.refList(val)
		case strings.HasPrefix(key, "/"):
			resourceKeys = append(resourceKeys, i)
		}
		if err != nil {
			return nil, err
		}
	}

	// Declarations are decoded after the scalar fields because bodies fall
	// back to the root media type.
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, deref(n.Content[i+1])
		var err error
		switch key {
		case keyTraits:
			root.Traits, err = d.traits(val)
		case keyResourceTypes:
			root.ResourceTypes, err = d.resourceTypes(val)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, i := range resourceKeys {
		res, err := d.resource(n.Content[i].Value, deref(n.Content[i+1]), nil)
		if err != nil {
			return nil, err
		}
		root.Resources = append(root.Resources, res)
	}
	return root, nil
}

// collectIncludes records a warning for every !include tag. Included files
// are not loaded; the tag's scalar stays in place as a plain string.
func (d *decoder) collectIncludes(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Tag == includeTag {
		d.warn(n, "!include %q is not resolved", n.Value)
	}
	for _, c := range n.Content {
		d.collectIncludes(c)
	}
}

func (d *decoder) documentation(n *yaml.Node) ([]*Documentation, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorAt(n, "Error parsing documentation")
	}
	docs := make([]*Documentation, 0, len(n.Content))
	for _, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.MappingNode {
			return nil, d.errorAt(item, "Error parsing documentation")
		}
		doc := &Documentation{}
		if v := mappingValue(item, keyTitle); v != nil && !isNull(v) {
			s := v.Value
			doc.Title = &s
		}
		if v := mappingValue(item, keyContent); v != nil && !isNull(v) {
			s := v.Value
			doc.Content = &s
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (d *decoder) schemas(n *yaml.Node) ([]map[string]any, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.MappingNode:
		return []map[string]any{rawMap(n)}, nil
	case n.Kind == yaml.SequenceNode:
		out := make([]map[string]any, 0, len(n.Content))
		for _, item := range n.Content {
			item = deref(item)
			if item.Kind != yaml.MappingNode {
				return nil, d.errorAt(item, "Error parsing schemas")
			}
			out = append(out, rawMap(item))
		}
		return out, nil
	default:
		return nil, d.errorAt(n, "Error parsing schemas")
	}
}

// declarations flattens a RAML 0.8 list of single-key maps, or a plain
// mapping, into name/value pairs in document order.
func (d *decoder) declarations(n *yaml.Node, what string) ([][2]*yaml.Node, error) {
	if isNull(n) {
		return nil, nil
	}
	var pairs [][2]*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			pairs = append(pairs, [2]*yaml.Node{n.Content[i], deref(n.Content[i+1])})
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			item = deref(item)
			if item.Kind != yaml.MappingNode {
				return nil, d.errorAt(item, "Error parsing %s", what)
			}
			for i := 0; i+1 < len(item.Content); i += 2 {
				pairs = append(pairs, [2]*yaml.Node{item.Content[i], deref(item.Content[i+1])})
			}
		}
	default:
		return nil, d.errorAt(n, "Error parsing %s", what)
	}
	for _, p := range pairs {
		if !isNull(p[1]) && p[1].Kind != yaml.MappingNode {
			return nil, d.errorAt(p[1], "Error parsing %s '%s'", what, p[0].Value)
		}
	}
	return pairs, nil
}

func (d *decoder) traits(n *yaml.Node) ([]*Trait, error) {
	pairs, err := d.declarations(n, "trait")
	if err != nil {
		return nil, err
	}
	traits := make([]*Trait, 0, len(pairs))
	for _, p := range pairs {
		t := &Trait{
			Name:        p[0].Value,
			DisplayName: stringField(p[1], keyDisplayName),
			Usage:       stringField(p[1], keyUsage),
			Raw:         rawMap(p[1]),
		}
		if t.DisplayName == "" {
			t.DisplayName = t.Name
		}
		if err := d.operation(p[1], &t.Operation); err != nil {
			return nil, err
		}
		traits = append(traits, t)
	}
	return traits, nil
}

func (d *decoder) resourceTypes(n *yaml.Node) ([]*ResourceTypeNode, error) {
	pairs, err := d.declarations(n, "resource type")
	if err != nil {
		return nil, err
	}
	types := make([]*ResourceTypeNode, 0, len(pairs))
	for _, p := range pairs {
		rt := &ResourceTypeNode{
			Name:        p[0].Value,
			DisplayName: stringField(p[1], keyDisplayName),
			Usage:       stringField(p[1], keyUsage),
			Description: stringField(p[1], keyDescription),
			Root:        d.root,
			Raw:         rawMap(p[1]),
		}
		if rt.DisplayName == "" {
			rt.DisplayName = rt.Name
		}
		err := d.eachPair(p[1], func(key string, val *yaml.Node) error {
			var err error
			switch key {
			case keyIs:
				rt.Traits = d.refList(val)
			case keyType:
				rt.Type = d.typeRefs(val)
			case keyURIParameters:
				rt.URIParameters, err = d.parameters(val, LocationURI)
			case keyBaseURIParameters:
				rt.BaseURIParameters, err = d.parameters(val, LocationBaseURI)
			default:
				if name, optional, ok := methodKey(key, true); ok {
					var m *MethodNode
					m, err = d.method(name, optional, val)
					if m != nil {
						rt.Methods = append(rt.Methods, m)
					}
				}
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, nil
}

func (d *decoder) resource(name string, n *yaml.Node, parent *ResourceNode) (*ResourceNode, error) {
	if !isNull(n) && n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing resource '%s'", name)
	}
	res := &ResourceNode{
		Name:        name,
		Path:        name,
		DisplayName: stringField(n, keyDisplayName),
		Description: stringField(n, keyDescription),
		Parent:      parent,
		Root:        d.root,
		Raw:         rawMap(n),
	}
	if parent != nil {
		res.Path = parent.Path + name
	}
	if res.DisplayName == "" {
		res.DisplayName = name
	}

	err := d.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch {
		case key == keyIs:
			res.Traits = d.refList(val)
		case key == keyType:
			res.Type = d.typeRefs(val)
		case key == keyURIParameters:
			res.URIParameters, err = d.parameters(val, LocationURI)
		case key == keyBaseURIParameters:
			res.BaseURIParameters, err = d.parameters(val, LocationBaseURI)
		case key == keySecuredBy:
			res.SecuredBy = d.refList(val)
		case strings.HasPrefix(key, "/"):
			var child *ResourceNode
			child, err = d.resource(key, val, res)
			if child != nil {
				res.Resources = append(res.Resources, child)
			}
		default:
			if m, _, ok := methodKey(key, false); ok {
				var method *MethodNode
				method, err = d.method(m, false, val)
				if method != nil {
					res.Methods = append(res.Methods, method)
				}
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// methodKey reports whether key names an HTTP method. Resource types may
// mark a method optional with a trailing "?".
func methodKey(key string, allowOptional bool) (string, bool, bool) {
	optional := false
	if allowOptional && strings.HasSuffix(key, "?") {
		key = strings.TrimSuffix(key, "?")
		optional = true
	}
	if !slices.Contains(Methods, key) {
		return "", false, false
	}
	return key, optional, true
}

func (d *decoder) method(name string, optional bool, n *yaml.Node) (*MethodNode, error) {
	if !isNull(n) && n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing method '%s'", name)
	}
	m := &MethodNode{
		Method:   name,
		Optional: optional,
		Traits:   d.refList(mappingValue(n, keyIs)),
		Raw:      rawMap(n),
	}
	if err := d.operation(n, &m.Operation); err != nil {
		return nil, err
	}
	return m, nil
}

// operation decodes the fields shared by methods and traits.
func (d *decoder) operation(n *yaml.Node, op *Operation) error {
	return d.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case keyDescription:
			op.Description = scalarString(val)
		case keyProtocols:
			op.Protocols, err = d.stringList(val, key)
		case keyHeaders:
			op.Headers, err = d.parameters(val, LocationHeader)
		case keyQueryParameters:
			op.QueryParameters, err = d.parameters(val, LocationQuery)
		case keyBaseURIParameters:
			op.BaseURIParameters, err = d.parameters(val, LocationBaseURI)
		case keyBody:
			op.Body, err = d.bodies(val)
		case keyResponses:
			op.Responses, err = d.responses(val)
		case keySecuredBy:
			op.SecuredBy = d.refList(val)
		}
		return err
	})
}

// bodies decodes a body mapping. Keys that look like media types
// ("application/json") introduce one body each; otherwise the mapping is a
// single body using the root media type.
func (d *decoder) bodies(n *yaml.Node) ([]*Body, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing body")
	}
	keyed := false
	for i := 0; i < len(n.Content); i += 2 {
		if strings.Contains(n.Content[i].Value, "/") {
			keyed = true
			break
		}
	}
	if !keyed {
		b, err := d.body(d.root.MediaType, n)
		if err != nil {
			return nil, err
		}
		return []*Body{b}, nil
	}

	var out []*Body
	err := d.eachPair(n, func(key string, val *yaml.Node) error {
		if !isNull(val) && val.Kind != yaml.MappingNode {
			return d.errorAt(val, "Error parsing body '%s'", key)
		}
		b, err := d.body(key, val)
		if err != nil {
			return err
		}
		out = append(out, b)
		return nil
	})
	return out, err
}

func (d *decoder) body(mimeType string, n *yaml.Node) (*Body, error) {
	b := &Body{
		MimeType: mimeType,
		Schema:   anyValue(mappingValue(n, keySchema)),
		Example:  anyValue(mappingValue(n, keyExample)),
		Raw:      rawMap(n),
	}
	if v := mappingValue(n, keyFormParameters); v != nil && !isNull(v) {
		params, err := d.parameters(v, LocationForm)
		if err != nil {
			return nil, err
		}
		// An empty but present mapping still counts as declared.
		if params == nil {
			params = []*Parameter{}
		}
		b.FormParameters = params
	}
	return b, nil
}

func (d *decoder) responses(n *yaml.Node) ([]*Response, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing responses")
	}
	out := make([]*Response, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, val := n.Content[i], deref(n.Content[i+1])
		if !isNull(val) && val.Kind != yaml.MappingNode {
			return nil, d.errorAt(val, "Error parsing response '%s'", keyNode.Value)
		}
		resp := &Response{
			Code:        responseCode(keyNode),
			Description: stringField(val, keyDescription),
			Raw:         rawMap(val),
		}
		var err error
		if resp.Headers, err = d.parameters(mappingValue(val, keyHeaders), LocationHeader); err != nil {
			return nil, err
		}
		if resp.Body, err = d.bodies(mappingValue(val, keyBody)); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// responseCode keeps integer keys as int and everything else as the key text.
func responseCode(key *yaml.Node) any {
	if key.ShortTag() == intTag {
		if code, err := strconv.Atoi(key.Value); err == nil {
			return code
		}
	}
	return key.Value
}

func (d *decoder) parameters(n *yaml.Node, loc ParameterLocation) ([]*Parameter, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing %s", loc)
	}
	out := make([]*Parameter, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		p, err := d.parameter(n.Content[i].Value, deref(n.Content[i+1]), loc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) parameter(name string, n *yaml.Node, loc ParameterLocation) (*Parameter, error) {
	// A list declares alternative types for the same parameter. The first
	// becomes the parameter itself and the rest hang off Alternatives.
	if n != nil && n.Kind == yaml.SequenceNode {
		if len(n.Content) == 0 {
			return nil, d.errorAt(n, "Error parsing parameter '%s'", name)
		}
		first, err := d.parameterDecl(name, deref(n.Content[0]), loc)
		if err != nil {
			return nil, err
		}
		for _, item := range n.Content[1:] {
			alt, err := d.parameterDecl(name, deref(item), loc)
			if err != nil {
				return nil, err
			}
			first.Alternatives = append(first.Alternatives, alt)
		}
		return first, nil
	}
	return d.parameterDecl(name, n, loc)
}

// parameterDecl decodes a single parameter declaration mapping.
func (d *decoder) parameterDecl(name string, n *yaml.Node, loc ParameterLocation) (*Parameter, error) {
	if !isNull(n) && n.Kind != yaml.MappingNode {
		return nil, d.errorAt(n, "Error parsing parameter '%s'", name)
	}

	p := &Parameter{
		Name:        name,
		DisplayName: stringField(n, keyDisplayName),
		Description: stringField(n, keyDescription),
		Type:        DefaultParameterType,
		Location:    loc,
		Default:     anyValue(mappingValue(n, "default")),
		Example:     anyValue(mappingValue(n, keyExample)),
		Raw:         rawMap(n),
	}
	if p.DisplayName == "" {
		p.DisplayName = name
	}
	if v := mappingValue(n, keyType); v != nil && !isNull(v) {
		p.Type = v.Value
		p.TypeDeclared = true
	}
	// URI parameters are required unless stated otherwise.
	p.Required = loc == LocationURI || loc == LocationBaseURI

	err := d.eachPair(n, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case "required":
			err = d.decodeInto(val, key, &p.Required)
		case "repeat":
			err = d.decodeInto(val, key, &p.Repeat)
		case "enum":
			if val.Kind != yaml.SequenceNode {
				return d.errorAt(val, "enum of parameter '%s' must be a list", name)
			}
			p.Enum = make([]any, 0, len(val.Content))
			for _, item := range val.Content {
				p.Enum = append(p.Enum, anyValue(deref(item)))
			}
		case "pattern":
			s := val.Value
			p.Pattern = &s
		case "minLength":
			p.MinLength, err = d.intPtr(val, key)
		case "maxLength":
			p.MaxLength, err = d.intPtr(val, key)
		case "minimum":
			p.Minimum, err = d.floatPtr(val, key)
		case "maximum":
			p.Maximum, err = d.floatPtr(val, key)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (d *decoder) decodeInto(n *yaml.Node, field string, out any) error {
	if err := n.Decode(out); err != nil {
		return d.errorAt(n, "invalid value for '%s': %v", field, err)
	}
	return nil
}

func (d *decoder) intPtr(n *yaml.Node, field string) (*int, error) {
	if isNull(n) {
		return nil, nil
	}
	var v int
	if err := d.decodeInto(n, field, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *decoder) floatPtr(n *yaml.Node, field string) (*float64, error) {
	if isNull(n) {
		return nil, nil
	}
	var v float64
	if err := d.decodeInto(n, field, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *decoder) stringList(n *yaml.Node, field string) ([]string, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorAt(n, "'%s' must be a list of strings", field)
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = deref(item)
		if item.Kind != yaml.ScalarNode {
			return nil, d.errorAt(item, "'%s' must be a list of strings", field)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// refList decodes an "is" or "securedBy" value. Anything but a list is
// kept as a single malformed reference.
func (d *decoder) refList(n *yaml.Node) []Reference {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return []Reference{MalformedRef{Value: anyValue(n)}}
	}
	refs := make([]Reference, 0, len(n.Content))
	for _, item := range n.Content {
		refs = append(refs, refItem(deref(item)))
	}
	return refs
}

// typeRefs decodes a "type" value: a name, a mapping of name to parameters,
// or a list of either. A result with several entries means several types
// were assigned.
func (d *decoder) typeRefs(n *yaml.Node) []Reference {
	switch {
	case isNull(n):
		return nil
	case n.Kind == yaml.MappingNode:
		refs := make([]Reference, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			refs = append(refs, parameterized(n.Content[i], deref(n.Content[i+1])))
		}
		return refs
	case n.Kind == yaml.SequenceNode:
		refs := make([]Reference, 0, len(n.Content))
		for _, item := range n.Content {
			refs = append(refs, refItem(deref(item)))
		}
		return refs
	default:
		return []Reference{refItem(n)}
	}
}

func refItem(n *yaml.Node) Reference {
	switch {
	case n.Kind == yaml.ScalarNode && n.ShortTag() == strTag:
		return NameRef(n.Value)
	case n.Kind == yaml.MappingNode && len(n.Content) == 2:
		return parameterized(n.Content[0], deref(n.Content[1]))
	default:
		return MalformedRef{Value: anyValue(n)}
	}
}

func parameterized(key, val *yaml.Node) Reference {
	if key.ShortTag() != strTag {
		return MalformedRef{Value: map[string]any{key.Value: anyValue(val)}}
	}
	ref := ParameterizedRef{Name: key.Value}
	if val.Kind == yaml.MappingNode {
		ref.Params = rawMap(val)
	}
	return ref
}

// eachPair calls fn for each key/value pair of a mapping node, in order.
// Null and non-mapping nodes have no pairs.
func (d *decoder) eachPair(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, deref(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// deref follows YAML aliases to the anchored node.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == nullTag)
}

// mappingValue returns the value for key in a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

func scalarString(n *yaml.Node) string {
	if isNull(n) || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func stringField(n *yaml.Node, key string) string {
	return scalarString(mappingValue(n, key))
}

// anyValue decodes n into a generic Go value; nil for absent or null nodes.
func anyValue(n *yaml.Node) any {
	if isNull(n) {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}

// rawMap decodes a mapping node into a generic map; nil otherwise.
func rawMap(n *yaml.Node) map[string]any {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var m map[string]any
	if err := n.Decode(&m); err != nil {
		return nil
	}
	return m
}
