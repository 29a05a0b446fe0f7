// Package contract models the hierarchical description of an HTTP API surface
// that the verifier compares: an API owns resources, resources own nested
// resources and actions, and actions own request bodies, responses, headers,
// and query parameters.
//
// The same shape is used for both sides of a comparison. A reference tree is
// the published contract; a target tree is whatever is being checked against
// it, such as a tree derived from an implementation or a later revision of the
// contract. Trees are built by callers (see [Decode] and the contract/openapi
// package) and treated as read-only by the verifier.
//
// Maps that are nil are equivalent to empty maps throughout the package.
package contract

import (
	"sort"
	"strings"
)

// API is the root of a contract tree.
type API struct {
	// Title is the human-readable API name
	Title string
	// Version is the API version label
	Version string
	// BaseURI is the base URI all resource paths are relative to
	BaseURI string
	// Resources are the top-level resources in declaration order
	Resources []*Resource
}

// Resource returns the top-level resource with the given relative URI, or nil.
func (a *API) Resource(relativeURI string) *Resource {
	if a == nil {
		return nil
	}
	return findResource(a.Resources, relativeURI)
}

// AddResource appends r as a top-level resource. If a resource with the same
// relative URI already exists, r is merged into it and the existing resource is
// returned.
func (a *API) AddResource(r *Resource) *Resource {
	if existing := findResource(a.Resources, r.RelativeURI); existing != nil {
		existing.merge(r)
		return existing
	}
	r.parent = nil
	a.Resources = append(a.Resources, r)
	return r
}

// Resource is one URI path segment node.
type Resource struct {
	// RelativeURI is the segment relative to the parent, e.g. "/orders" or "/{id}"
	RelativeURI string
	// DisplayName is the human-readable resource name
	DisplayName string
	// Description is free-form documentation
	Description string
	// Actions maps each verb to its behavior on this resource
	Actions map[Verb]*Action
	// Resources are the nested resources in declaration order
	Resources []*Resource

	parent *Resource
}

// NewResource creates an empty resource for the given relative URI.
func NewResource(relativeURI string) *Resource {
	return &Resource{
		RelativeURI: relativeURI,
		Actions:     make(map[Verb]*Action),
	}
}

// Parent returns the enclosing resource, or nil for top-level resources and
// resources not attached via AddResource.
func (r *Resource) Parent() *Resource {
	return r.parent
}

// URI reconstructs the full path of the resource from its ancestors.
func (r *Resource) URI() string {
	var segments []string
	for cur := r; cur != nil; cur = cur.parent {
		segments = append(segments, cur.RelativeURI)
		if len(segments) > maxDepth {
			break
		}
	}
	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteString(segments[i])
	}
	return sb.String()
}

// Resource returns the nested resource with the given relative URI, or nil.
func (r *Resource) Resource(relativeURI string) *Resource {
	if r == nil {
		return nil
	}
	return findResource(r.Resources, relativeURI)
}

// AddResource attaches child below r. A child whose relative URI is already
// present is merged into the existing node, keeping sibling URIs unique. The
// resource that ends up in the tree is returned.
func (r *Resource) AddResource(child *Resource) *Resource {
	if existing := findResource(r.Resources, child.RelativeURI); existing != nil {
		existing.merge(child)
		return existing
	}
	child.parent = r
	r.Resources = append(r.Resources, child)
	return child
}

// Action returns the action for verb, or nil.
func (r *Resource) Action(verb Verb) *Action {
	if r == nil {
		return nil
	}
	return r.Actions[verb]
}

// SetAction registers a on r under its verb, replacing any previous action.
func (r *Resource) SetAction(a *Action) {
	if r.Actions == nil {
		r.Actions = make(map[Verb]*Action)
	}
	a.resource = r
	r.Actions[a.Verb] = a
}

// SortedVerbs returns the verbs present on r in canonical order.
func (r *Resource) SortedVerbs() []Verb {
	if r == nil || len(r.Actions) == 0 {
		return nil
	}
	verbs := make([]Verb, 0, len(r.Actions))
	for _, v := range canonicalVerbs {
		if _, ok := r.Actions[v]; ok {
			verbs = append(verbs, v)
		}
	}
	// Verbs outside the canonical set still take part, after the known ones.
	if len(verbs) < len(r.Actions) {
		var extra []Verb
		for v := range r.Actions {
			if !v.IsValid() {
				extra = append(extra, v)
			}
		}
		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
		verbs = append(verbs, extra...)
	}
	return verbs
}

func (r *Resource) merge(other *Resource) {
	if r == other {
		return
	}
	if r.DisplayName == "" {
		r.DisplayName = other.DisplayName
	}
	if r.Description == "" {
		r.Description = other.Description
	}
	for _, verb := range other.SortedVerbs() {
		r.SetAction(other.Actions[verb])
	}
	for _, child := range other.Resources {
		r.AddResource(child)
	}
}

func findResource(resources []*Resource, relativeURI string) *Resource {
	for _, r := range resources {
		if r != nil && r.RelativeURI == relativeURI {
			return r
		}
	}
	return nil
}

// Action is one verb's behavior on a resource.
type Action struct {
	// Verb is the HTTP method
	Verb Verb
	// Description is free-form documentation
	Description string
	// Body maps request media types to their payload description
	Body map[string]*Body
	// Responses maps status codes ("200", "404", "default") to responses
	Responses map[string]*Response
	// Headers maps request header names to their descriptors
	Headers map[string]*Parameter
	// QueryParameters maps query parameter names to their descriptors
	QueryParameters map[string]*Parameter

	resource *Resource
}

// NewAction creates an empty action for verb.
func NewAction(verb Verb) *Action {
	return &Action{Verb: verb}
}

// Resource returns the resource the action was registered on via SetAction, or nil.
func (a *Action) Resource() *Resource {
	if a == nil {
		return nil
	}
	return a.resource
}

// HasBody reports whether the action declares at least one request body.
func (a *Action) HasBody() bool {
	return a != nil && len(a.Body) > 0
}

// Response returns the response for code, or nil.
func (a *Action) Response(code string) *Response {
	if a == nil {
		return nil
	}
	return a.Responses[code]
}

// Response describes one status code's reply.
type Response struct {
	// Code is the status code key, e.g. "200"
	Code string
	// Description is free-form documentation
	Description string
	// Body maps response media types to their payload description
	Body map[string]*Body
	// Headers maps response header names to their descriptors
	Headers map[string]*Parameter
}

// HasBody reports whether the response declares at least one body.
func (r *Response) HasBody() bool {
	return r != nil && len(r.Body) > 0
}

// Body is a payload for one media type. Schema is opaque to this package; it
// may be a JSON schema string, raw JSON bytes, or a decoded structure.
type Body struct {
	MediaType string
	Schema    any
	Example   string
}

// Parameter describes a header or query parameter.
type Parameter struct {
	Name        string
	Type        string
	Required    bool
	Description string
	Example     string
}

// SortedKeys returns the keys of m in lexical order. It is used wherever the
// package iterates a keyed map so results are deterministic.
func SortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
