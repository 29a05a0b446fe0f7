package verifier

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/contract"
)

// PolicyFormat identifies the syntax of a policy file.
type PolicyFormat string

const (
	// PolicyFormatYAML is YAML (and therefore JSON)
	PolicyFormatYAML PolicyFormat = "yaml"
	// PolicyFormatTOML is TOML
	PolicyFormatTOML PolicyFormat = "toml"
)

// Policy is a declarative comparison configuration, loaded from a file so that
// CI pipelines can pin the rules a contract is verified with.
//
//	max_severity: warning
//	location: implementation
//	strict: true
//	checkers: [content-type, response-codes]
//	content_type:
//	  body_verbs: [post, put, patch]
//	  catch_all: "*/*"
type Policy struct {
	// MaxSeverity caps reported severities (info, warning, error)
	MaxSeverity string `yaml:"max_severity" toml:"max_severity"`
	// Location is the side issues are attributed to (implementation, contract)
	Location string `yaml:"location" toml:"location"`
	// Strict reports target-only resources and actions
	Strict bool `yaml:"strict" toml:"strict"`
	// Checkers names the built-in checkers to run; empty means all
	Checkers []string `yaml:"checkers" toml:"checkers"`
	// ContentType configures the content-type checker
	ContentType ContentTypePolicy `yaml:"content_type" toml:"content_type"`
}

// ContentTypePolicy configures ContentTypeChecker.
type ContentTypePolicy struct {
	// BodyVerbs overrides the verbs whose request bodies are checked
	BodyVerbs []string `yaml:"body_verbs" toml:"body_verbs"`
	// CatchAll overrides the catch-all media type
	CatchAll string `yaml:"catch_all" toml:"catch_all"`
}

// LoadPolicy reads a policy file, choosing the syntax from its extension:
// .toml is TOML, .yaml, .yml and .json are YAML.
func LoadPolicy(path string) (*Policy, error) {
	var format PolicyFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = PolicyFormatTOML
	case ".yaml", ".yml", ".json":
		format = PolicyFormatYAML
	default:
		return nil, &apierrors.ConfigError{Option: "policy", Value: path, Message: "unsupported policy file extension (use .yaml, .yml, .json or .toml)"}
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-provided by design
	if err != nil {
		return nil, &apierrors.ConfigError{Option: "policy", Value: path, Message: "cannot read policy file", Cause: err}
	}
	return ParsePolicy(data, format)
}

// ParsePolicy decodes a policy document. Unknown keys are rejected so that a
// misspelled setting is not silently ignored.
func ParsePolicy(data []byte, format PolicyFormat) (*Policy, error) {
	p := &Policy{}
	var err error
	switch format {
	case PolicyFormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(p)
	case PolicyFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(p)
		if err != nil && len(bytes.TrimSpace(data)) == 0 {
			err = nil
		}
	default:
		return nil, &apierrors.ConfigError{Option: "policy", Value: string(format), Message: "unknown policy format"}
	}
	if err != nil {
		return nil, &apierrors.ConfigError{Option: "policy", Message: "invalid policy document", Cause: err}
	}
	if _, err := p.Options(); err != nil {
		return nil, err
	}
	return p, nil
}

// ResolveCheckers instantiates the checkers the policy names, applying the
// content-type settings. An empty list selects every built-in checker.
func (p *Policy) ResolveCheckers() ([]Checker, error) {
	names := p.Checkers
	if len(names) == 0 {
		names = CheckerNames()
	}
	checkers, err := CheckersByName(names...)
	if err != nil {
		return nil, err
	}

	var bodyVerbs contract.VerbSet
	if len(p.ContentType.BodyVerbs) > 0 {
		bodyVerbs = contract.NewVerbSet()
		for _, name := range p.ContentType.BodyVerbs {
			verb, err := contract.ParseVerb(name)
			if err != nil {
				return nil, &apierrors.ConfigError{Option: "content_type.body_verbs", Value: name, Cause: err}
			}
			bodyVerbs[verb] = true
		}
	}
	for _, c := range checkers {
		ct, ok := c.(*ContentTypeChecker)
		if !ok {
			continue
		}
		if bodyVerbs != nil {
			ct.BodyVerbs = bodyVerbs
		}
		if p.ContentType.CatchAll != "" {
			ct.CatchAll = p.ContentType.CatchAll
		}
	}
	return checkers, nil
}

// Options resolves the policy into comparison options. It does not select
// the reference or target.
func (p *Policy) Options() ([]Option, error) {
	checkers, err := p.ResolveCheckers()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithCheckers(checkers...), WithStrict(p.Strict)}

	if p.MaxSeverity != "" {
		sev, err := ParseSeverity(p.MaxSeverity)
		if err != nil {
			return nil, &apierrors.ConfigError{Option: "max_severity", Value: p.MaxSeverity, Cause: err}
		}
		opts = append(opts, WithMaxSeverity(sev))
	}
	if p.Location != "" {
		loc, err := ParseLocation(p.Location)
		if err != nil {
			return nil, &apierrors.ConfigError{Option: "location", Value: p.Location, Cause: err}
		}
		opts = append(opts, WithLocation(loc))
	}
	return opts, nil
}

// Verifier resolves the policy into a two-way Verifier. MaxSeverity caps the
// implementation pass. Location and Strict do not apply: the contract pass
// already reports everything the implementation adds.
func (p *Policy) Verifier() (*Verifier, error) {
	checkers, err := p.ResolveCheckers()
	if err != nil {
		return nil, err
	}
	v := NewVerifier(checkers...)
	if p.MaxSeverity != "" {
		sev, err := ParseSeverity(p.MaxSeverity)
		if err != nil {
			return nil, &apierrors.ConfigError{Option: "max_severity", Value: p.MaxSeverity, Cause: err}
		}
		v.ImplementationMaxSeverity = sev
		if sev < v.ContractMaxSeverity {
			v.ContractMaxSeverity = sev
		}
	}
	return v, nil
}

// String renders the policy as YAML.
func (p *Policy) String() string {
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Sprintf("policy: %v", err)
	}
	return string(out)
}
