package verifier

import (
	"strings"

	"github.com/erraggy/apiverify/contract"
)

// ParameterChecker verifies header or query parameter coverage.
//
// For each reference parameter absent from the target it reports a missing
// issue, an error when the parameter is required and a warning otherwise.
// Parameters on both sides with different declared types are a mismatch
// warning, and a parameter that becomes required in the target is a mismatch
// error. Parameters only the target requires are extra errors, since existing
// clients do not send them.
type ParameterChecker struct {
	name     string
	label    string
	params   func(*contract.Action) map[string]*contract.Parameter
	foldCase bool
}

// NewQueryParameterChecker creates a ParameterChecker for query parameters.
func NewQueryParameterChecker() *ParameterChecker {
	return &ParameterChecker{
		name:  "query-parameters",
		label: "Query parameter",
		params: func(a *contract.Action) map[string]*contract.Parameter {
			return a.QueryParameters
		},
	}
}

// NewHeaderChecker creates a ParameterChecker for request headers. Header names
// are matched case-insensitively.
func NewHeaderChecker() *ParameterChecker {
	return &ParameterChecker{
		name:  "headers",
		label: "Header",
		params: func(a *contract.Action) map[string]*contract.Parameter {
			return a.Headers
		},
		foldCase: true,
	}
}

// Name implements Checker.
func (c *ParameterChecker) Name() string { return c.name }

// Check implements Checker.
func (c *ParameterChecker) Check(_ contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings {
	if reference == nil {
		return Findings{}
	}
	r := newReporter(reference, loc, max)
	refParams := c.lookup(reference)
	tgtParams := c.lookup(target)
	tgtIndex := c.index(tgtParams)
	refIndex := c.index(refParams)

	for _, name := range contract.SortedKeys(refParams) {
		ref := refParams[name]
		tgt, ok := tgtIndex[c.key(name)]
		if !ok {
			sev := SeverityWarning
			if ref != nil && ref.Required {
				sev = SeverityError
			}
			r.add(sev, KindMissing, c.label+" not found in target", name)
			continue
		}
		if ref == nil || tgt == nil {
			continue
		}
		if ref.Type != "" && tgt.Type != "" && !strings.EqualFold(ref.Type, tgt.Type) {
			r.add(SeverityWarning, KindMismatch, c.label+" type differs in target", name)
		}
		if !ref.Required && tgt.Required {
			r.add(SeverityError, KindMismatch, c.label+" is required in target but optional in reference", name)
		}
	}

	for _, name := range contract.SortedKeys(tgtParams) {
		tgt := tgtParams[name]
		if tgt == nil || !tgt.Required {
			continue
		}
		if _, ok := refIndex[c.key(name)]; !ok {
			r.add(SeverityError, KindExtra, "Required "+strings.ToLower(c.label)+" not declared in reference", name)
		}
	}
	return r.findings
}

func (c *ParameterChecker) lookup(a *contract.Action) map[string]*contract.Parameter {
	if a == nil {
		return nil
	}
	if c.params == nil {
		return a.QueryParameters
	}
	return c.params(a)
}

func (c *ParameterChecker) key(name string) string {
	if c.foldCase {
		return strings.ToLower(name)
	}
	return name
}

func (c *ParameterChecker) index(params map[string]*contract.Parameter) map[string]*contract.Parameter {
	out := make(map[string]*contract.Parameter, len(params))
	for name, p := range params {
		out[c.key(name)] = p
	}
	return out
}
