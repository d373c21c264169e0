package parser

// RootNode is the top of a parsed RAML document.
type RootNode struct {
	// Title is the API title (empty when absent)
	Title string
	// Version is the API version (empty when absent)
	Version string
	// BaseURI is the declared root request URL, possibly containing "{version}"
	BaseURI string
	// Protocols lists the transfer protocols the API supports
	Protocols []string
	// MediaType is the default media type for bodies
	MediaType string
	// BaseURIParameters describe the templated segments of BaseURI
	BaseURIParameters []*Parameter
	// URIParameters are root-level URI parameters
	URIParameters []*Parameter
	// Documentation holds the user documentation entries
	Documentation []*Documentation
	// Schemas holds the named schema declarations, in document order
	Schemas []map[string]any
	// SecuredBy lists the security schemes applied to every method
	SecuredBy []Reference
	// Traits are the declared traits, in document order
	Traits []*Trait
	// ResourceTypes are the declared resource types, in document order
	ResourceTypes []*ResourceTypeNode
	// Resources are the top-level resources, in document order
	Resources []*ResourceNode
	// Raw is the original mapping of the document
	Raw map[string]any
}

// Documentation is one entry of the root "documentation" list.
// A nil Title or Content means the key was absent or null.
type Documentation struct {
	Title   *string
	Content *string
}

// ResourceNode is a resource ("/users", "/{id}") within the document tree.
type ResourceNode struct {
	// Name is the relative URI of the resource as written ("/{id}")
	Name string
	// Path is the absolute URI of the resource ("/users/{id}")
	Path string
	// DisplayName defaults to Name when the document does not set one
	DisplayName string
	// Description is the resource description
	Description string
	// Traits are the traits assigned with "is"
	Traits []Reference
	// Type holds the resource types assigned with "type". More than one entry
	// means the document assigned several, which is a violation.
	Type []Reference
	// URIParameters describe the templated segments of Name
	URIParameters []*Parameter
	// BaseURIParameters override the root base URI parameters
	BaseURIParameters []*Parameter
	// SecuredBy lists the security schemes applied to this resource
	SecuredBy []Reference
	// Methods are the HTTP methods of the resource, in document order
	Methods []*MethodNode
	// Resources are the nested resources, in document order
	Resources []*ResourceNode
	// Parent is the enclosing resource, or nil for a top-level resource
	Parent *ResourceNode
	// Root is the document the resource belongs to
	Root *RootNode
	// Raw is the original mapping of the resource
	Raw map[string]any
}

// ResourceTypeNode is a resource type declared in the root "resourceTypes" list.
type ResourceTypeNode struct {
	Name        string
	DisplayName string
	Usage       string
	Description string
	// Traits are the traits assigned with "is"
	Traits []Reference
	// Type holds the resource types this type inherits from
	Type              []Reference
	URIParameters     []*Parameter
	BaseURIParameters []*Parameter
	Methods           []*MethodNode
	Root              *RootNode
	Raw               map[string]any
}

// Operation holds the fields shared by methods and traits.
type Operation struct {
	Description       string
	Protocols         []string
	Headers           []*Parameter
	QueryParameters   []*Parameter
	BaseURIParameters []*Parameter
	Body              []*Body
	Responses         []*Response
	SecuredBy         []Reference
}

// MethodNode is an HTTP method of a resource or resource type.
type MethodNode struct {
	// Method is the lower-case HTTP method ("get", "post", ...)
	Method string
	// Optional is set for resource type methods declared with a trailing "?"
	Optional bool
	// Traits are the traits assigned with "is"
	Traits []Reference
	Operation
	Raw map[string]any
}

// Trait is a reusable operation fragment declared in the root "traits" list.
type Trait struct {
	Name        string
	DisplayName string
	Usage       string
	Operation
	Raw map[string]any
}

// ParameterLocation identifies where a named parameter was declared.
type ParameterLocation string

// Parameter locations.
const (
	LocationBaseURI ParameterLocation = "baseUriParameters"
	LocationURI     ParameterLocation = "uriParameters"
	LocationQuery   ParameterLocation = "queryParameters"
	LocationForm    ParameterLocation = "formParameters"
	LocationHeader  ParameterLocation = "headers"
)

// DefaultParameterType is the type of a named parameter that declares none.
const DefaultParameterType = "string"

// Parameter is a named primitive parameter (URI, query, form parameter or header).
// Pointer fields are nil when the attribute is absent.
type Parameter struct {
	Name        string
	DisplayName string
	Description string
	// Type is the declared primitive type; DefaultParameterType when absent
	Type string
	// TypeDeclared reports whether the document set "type" explicitly
	TypeDeclared bool
	Location     ParameterLocation
	Required     bool
	Repeat       bool
	Default      any
	Example      any
	Enum         []any
	Pattern      *string
	MinLength    *int
	MaxLength    *int
	Minimum      *float64
	Maximum      *float64
	Raw          map[string]any
	// Alternatives holds the remaining declarations when the parameter is
	// written as a list of alternative types.
	Alternatives []*Parameter
}

// Body is a request or response body for one media type.
type Body struct {
	MimeType       string
	Schema         any
	Example        any
	FormParameters []*Parameter
	Raw            map[string]any
}

// Response is one entry of a method's "responses" mapping.
type Response struct {
	// Code is an int when the document key is an integer and the key's text otherwise
	Code        any
	Description string
	Headers     []*Parameter
	Body        []*Body
	Raw         map[string]any
}

// Methods lists the HTTP methods RAML allows on a resource.
var Methods = []string{"get", "post", "put", "delete", "patch", "head", "options", "trace", "connect"}
