// Package openapi builds contract trees from OpenAPI 3.x documents.
//
// Each path template is split into one resource per segment, so
// "/orders/{id}/items" becomes the nested resources "/orders", "/{id}", and
// "/items". Operations become actions, query and header parameters are
// carried over with their schema type, and request and response content is
// keyed by media type with the schema stored as JSON. The "*/*" media range
// is stored as [contract.CatchAllMediaType].
package openapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/contract"
)

// Load reads the OpenAPI document at path and converts it to a contract tree.
// Local and relative external references are resolved.
func Load(path string) (*contract.API, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, &apierrors.ParseError{Path: path, Message: "invalid OpenAPI document", Cause: err}
	}
	return FromDocument(doc), nil
}

// LoadData converts an in-memory OpenAPI document (YAML or JSON) to a contract tree.
func LoadData(data []byte) (*contract.API, error) {
	doc, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return nil, &apierrors.ParseError{Message: "invalid OpenAPI document", Cause: err}
	}
	return FromDocument(doc), nil
}

// IsOpenAPI reports whether data looks like an OpenAPI 3.x document, that is a
// mapping with a top-level "openapi" key.
func IsOpenAPI(data []byte) bool {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "openapi" {
			return true
		}
	}
	return false
}

// FromDocument converts a loaded OpenAPI document to a contract tree. Paths are
// visited in lexical order so the resulting tree is deterministic.
func FromDocument(doc *openapi3.T) *contract.API {
	api := &contract.API{}
	if doc == nil {
		return api
	}
	if doc.Info != nil {
		api.Title = doc.Info.Title
		api.Version = doc.Info.Version
	}
	if len(doc.Servers) > 0 && doc.Servers[0] != nil {
		api.BaseURI = doc.Servers[0].URL
	}
	if doc.Paths == nil {
		return api
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		r := resourceFor(api, path)
		for method, op := range item.Operations() {
			verb, err := contract.ParseVerb(method)
			if err != nil || op == nil {
				continue
			}
			r.SetAction(buildAction(verb, item.Parameters, op))
		}
	}
	return api
}

// resourceFor returns the innermost resource for path, creating the chain of
// segment resources as needed.
func resourceFor(api *contract.API, path string) *contract.Resource {
	segments := splitPath(path)
	r := api.AddResource(contract.NewResource(segments[0]))
	for _, seg := range segments[1:] {
		r = r.AddResource(contract.NewResource(seg))
	}
	return r
}

func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, "/"+part)
		}
	}
	if len(segments) == 0 {
		return []string{"/"}
	}
	return segments
}

func buildAction(verb contract.Verb, shared openapi3.Parameters, op *openapi3.Operation) *contract.Action {
	a := contract.NewAction(verb)
	a.Description = op.Summary
	if op.Description != "" {
		a.Description = op.Description
	}

	// Operation-level parameters override path-level ones with the same name and location.
	for _, params := range []openapi3.Parameters{shared, op.Parameters} {
		for _, ref := range params {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := ref.Value
			switch p.In {
			case openapi3.ParameterInQuery:
				if a.QueryParameters == nil {
					a.QueryParameters = make(map[string]*contract.Parameter)
				}
				a.QueryParameters[p.Name] = buildParameter(p)
			case openapi3.ParameterInHeader:
				if a.Headers == nil {
					a.Headers = make(map[string]*contract.Parameter)
				}
				a.Headers[p.Name] = buildParameter(p)
			}
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		a.Body = buildContent(op.RequestBody.Value.Content)
	}

	if op.Responses != nil {
		for code, ref := range op.Responses.Map() {
			if ref == nil || ref.Value == nil {
				continue
			}
			if a.Responses == nil {
				a.Responses = make(map[string]*contract.Response)
			}
			a.Responses[code] = buildResponse(code, ref.Value)
		}
	}
	return a
}

func buildParameter(p *openapi3.Parameter) *contract.Parameter {
	out := &contract.Parameter{
		Name:        p.Name,
		Required:    p.Required,
		Description: p.Description,
	}
	if p.Schema != nil && p.Schema.Value != nil {
		out.Type = schemaType(p.Schema.Value)
	}
	if p.Example != nil {
		out.Example = fmt.Sprint(p.Example)
	}
	return out
}

func buildResponse(code string, resp *openapi3.Response) *contract.Response {
	out := &contract.Response{
		Code: code,
		Body: buildContent(resp.Content),
	}
	if resp.Description != nil {
		out.Description = *resp.Description
	}
	for name, ref := range resp.Headers {
		if ref == nil || ref.Value == nil {
			continue
		}
		if out.Headers == nil {
			out.Headers = make(map[string]*contract.Parameter)
		}
		p := buildParameter(&ref.Value.Parameter)
		p.Name = name
		out.Headers[name] = p
	}
	return out
}

// anyMediaType is the OpenAPI media range matching every media type.
const anyMediaType = "*/*"

// buildContent keys bodies by media type. The "*/*" range becomes
// contract.CatchAllMediaType so that checkers treat it as accepting anything.
func buildContent(content openapi3.Content) map[string]*contract.Body {
	if len(content) == 0 {
		return nil
	}
	out := make(map[string]*contract.Body, len(content))
	for mediaType, mt := range content {
		if mediaType == anyMediaType {
			mediaType = contract.CatchAllMediaType
		}
		b := &contract.Body{MediaType: mediaType}
		if mt != nil {
			if mt.Schema != nil && mt.Schema.Value != nil {
				if raw, err := json.Marshal(mt.Schema.Value); err == nil {
					b.Schema = json.RawMessage(raw)
				}
			}
			if mt.Example != nil {
				if raw, err := json.Marshal(mt.Example); err == nil {
					b.Example = string(raw)
				}
			}
		}
		out[mediaType] = b
	}
	return out
}

func schemaType(s *openapi3.Schema) string {
	types := s.Type.Slice()
	if len(types) == 0 {
		return ""
	}
	return types[0]
}
