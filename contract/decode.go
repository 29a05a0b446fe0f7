package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/internal/httputil"
)

// Decode builds a contract tree from a YAML or JSON tree document.
//
// The layout follows RAML conventions: top-level title, version, and baseUri
// keys describe the API; every key beginning with "/" is a resource, nested
// resources appear as "/"-keys inside their parent, and lower-case verb keys
// (get, post, ...) are actions. Actions may declare description, body,
// responses, headers, and queryParameters. Bodies are keyed by media type and
// may declare schema and example. Keys not listed here are ignored.
//
// Resource declaration order is preserved. Media types and status codes are
// validated. Errors are *apierrors.ParseError.
func Decode(data []byte) (*API, error) {
	return decode(data, "")
}

// LoadFile reads and decodes the tree document at path.
func LoadFile(path string) (*API, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-provided by design
	if err != nil {
		return nil, fmt.Errorf("contract: reading %s: %w", path, err)
	}
	return decode(data, path)
}

func decode(data []byte, source string) (*API, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &apierrors.ParseError{Path: source, Message: "invalid YAML/JSON", Cause: err}
	}
	doc := &root
	if doc.Kind == 0 {
		return &API{}, nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &API{}, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &apierrors.ParseError{
			Path: source, Line: doc.Line, Column: doc.Column,
			Message: "tree document must be a mapping",
		}
	}

	d := &decoder{source: source}
	api := &API{}
	err := eachPair(doc, func(key, value *yaml.Node) error {
		switch {
		case key.Value == "title":
			api.Title = value.Value
		case key.Value == "version":
			api.Version = value.Value
		case key.Value == "baseUri":
			api.BaseURI = value.Value
		case strings.HasPrefix(key.Value, "/"):
			r, err := d.resource(key.Value, value)
			if err != nil {
				return err
			}
			api.AddResource(r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return api, nil
}

type decoder struct {
	source string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &apierrors.ParseError{
		Path:    d.source,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) resource(uri string, n *yaml.Node) (*Resource, error) {
	r := NewResource(uri)
	if isNull(n) {
		return r, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "resource %s must be a mapping", uri)
	}
	err := eachPair(n, func(key, value *yaml.Node) error {
		switch {
		case key.Value == "displayName":
			r.DisplayName = value.Value
		case key.Value == "description":
			r.Description = value.Value
		case strings.HasPrefix(key.Value, "/"):
			child, err := d.resource(key.Value, value)
			if err != nil {
				return err
			}
			r.AddResource(child)
		case isVerbKey(key.Value):
			a, err := d.action(Verb(strings.ToUpper(key.Value)), value)
			if err != nil {
				return err
			}
			r.SetAction(a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (d *decoder) action(verb Verb, n *yaml.Node) (*Action, error) {
	a := NewAction(verb)
	if isNull(n) {
		return a, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "action %s must be a mapping", strings.ToLower(string(verb)))
	}
	err := eachPair(n, func(key, value *yaml.Node) error {
		var err error
		switch key.Value {
		case "description":
			a.Description = value.Value
		case "body":
			a.Body, err = d.bodies(value)
		case "responses":
			a.Responses, err = d.responses(value)
		case "headers":
			a.Headers, err = d.parameters(value)
		case "queryParameters":
			a.QueryParameters, err = d.parameters(value)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (d *decoder) bodies(n *yaml.Node) (map[string]*Body, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "body must be a mapping of media types")
	}
	out := make(map[string]*Body)
	err := eachPair(n, func(key, value *yaml.Node) error {
		if !httputil.IsValidMediaType(key.Value) {
			return d.errorf(key, "invalid media type %q", key.Value)
		}
		b := &Body{MediaType: key.Value}
		if isNull(value) {
			out[key.Value] = b
			return nil
		}
		if value.Kind != yaml.MappingNode {
			return d.errorf(value, "body %s must be a mapping", key.Value)
		}
		err := eachPair(value, func(k, v *yaml.Node) error {
			switch k.Value {
			case "schema":
				var schema any
				if err := v.Decode(&schema); err != nil {
					return d.errorf(v, "schema for %s: %v", key.Value, err)
				}
				b.Schema = schema
			case "example":
				b.Example = scalarOrJSON(v)
			}
			return nil
		})
		if err != nil {
			return err
		}
		out[key.Value] = b
		return nil
	})
	return out, err
}

func (d *decoder) responses(n *yaml.Node) (map[string]*Response, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "responses must be a mapping of status codes")
	}
	out := make(map[string]*Response)
	err := eachPair(n, func(key, value *yaml.Node) error {
		if !httputil.ValidateStatusCode(key.Value) {
			return d.errorf(key, "invalid status code %q", key.Value)
		}
		resp := &Response{Code: key.Value}
		if !isNull(value) {
			if value.Kind != yaml.MappingNode {
				return d.errorf(value, "response %s must be a mapping", key.Value)
			}
			err := eachPair(value, func(k, v *yaml.Node) error {
				var err error
				switch k.Value {
				case "description":
					resp.Description = v.Value
				case "body":
					resp.Body, err = d.bodies(v)
				case "headers":
					resp.Headers, err = d.parameters(v)
				}
				return err
			})
			if err != nil {
				return err
			}
		}
		out[key.Value] = resp
		return nil
	})
	return out, err
}

// parameterNode is the decoded form of a header or query parameter.
type parameterNode struct {
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Description string `yaml:"description"`
	Example     any    `yaml:"example"`
}

func (d *decoder) parameters(n *yaml.Node) (map[string]*Parameter, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "parameters must be a mapping of names")
	}
	out := make(map[string]*Parameter)
	err := eachPair(n, func(key, value *yaml.Node) error {
		p := &Parameter{Name: key.Value}
		if !isNull(value) {
			var pn parameterNode
			if err := value.Decode(&pn); err != nil {
				return d.errorf(value, "parameter %s: %v", key.Value, err)
			}
			p.Type = pn.Type
			p.Required = pn.Required
			p.Description = pn.Description
			if pn.Example != nil {
				p.Example = fmt.Sprint(pn.Example)
			}
		}
		out[key.Value] = p
		return nil
	})
	return out, err
}

// eachPair calls fn for every key/value pair of a mapping node, in document order.
func eachPair(n *yaml.Node, fn func(key, value *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i], n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func isVerbKey(key string) bool {
	if key != strings.ToLower(key) {
		return false
	}
	return Verb(strings.ToUpper(key)).IsValid()
}

func scalarOrJSON(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return ""
	}
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}
