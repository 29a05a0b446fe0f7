package verifier

import (
	"strings"

	"github.com/erraggy/apiverify/apierrors"
)

// checkerFactories lists the built-in checkers in their default order.
var checkerFactories = []struct {
	name string
	new  func() Checker
}{
	{"content-type", func() Checker { return NewContentTypeChecker() }},
	{"response-codes", func() Checker { return NewResponseCodeChecker() }},
	{"query-parameters", func() Checker { return NewQueryParameterChecker() }},
	{"headers", func() Checker { return NewHeaderChecker() }},
	{"schema-properties", func() Checker { return NewSchemaPropertyChecker() }},
}

// DefaultCheckers returns a fresh instance of every built-in checker in a fixed order.
func DefaultCheckers() []Checker {
	out := make([]Checker, 0, len(checkerFactories))
	for _, f := range checkerFactories {
		out = append(out, f.new())
	}
	return out
}

// CheckerNames returns the names of the built-in checkers.
func CheckerNames() []string {
	out := make([]string, 0, len(checkerFactories))
	for _, f := range checkerFactories {
		out = append(out, f.name)
	}
	return out
}

// CheckerByName returns a new instance of the named built-in checker.
func CheckerByName(name string) (Checker, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, f := range checkerFactories {
		if f.name == normalized {
			return f.new(), nil
		}
	}
	return nil, &apierrors.ConfigError{
		Option:  "checkers",
		Value:   name,
		Message: "unknown checker (valid: " + strings.Join(CheckerNames(), ", ") + ")",
	}
}

// CheckersByName resolves a list of names in order. The special name "all"
// expands to DefaultCheckers.
func CheckersByName(names ...string) ([]Checker, error) {
	var out []Checker
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			out = append(out, DefaultCheckers()...)
			continue
		}
		c, err := CheckerByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
