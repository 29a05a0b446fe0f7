package contract

import (
	"fmt"
	"strings"
)

// Verb is an HTTP method an Action responds to.
type Verb string

// Supported verbs. The order of declaration is the canonical iteration order.
const (
	GET     Verb = "GET"
	POST    Verb = "POST"
	PUT     Verb = "PUT"
	PATCH   Verb = "PATCH"
	DELETE  Verb = "DELETE"
	HEAD    Verb = "HEAD"
	OPTIONS Verb = "OPTIONS"
	TRACE   Verb = "TRACE"
)

var canonicalVerbs = []Verb{GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS, TRACE}

// Verbs returns every supported verb in canonical order.
func Verbs() []Verb {
	out := make([]Verb, len(canonicalVerbs))
	copy(out, canonicalVerbs)
	return out
}

// ParseVerb converts a case-insensitive method name into a Verb.
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	if !v.IsValid() {
		return "", fmt.Errorf("contract: unknown HTTP verb %q", s)
	}
	return v, nil
}

// IsValid reports whether v is one of the supported verbs.
func (v Verb) IsValid() bool {
	for _, known := range canonicalVerbs {
		if v == known {
			return true
		}
	}
	return false
}

// String returns the upper-case method name.
func (v Verb) String() string {
	return string(v)
}

// VerbSet is a set of verbs, used to classify which verbs may carry a request body.
type VerbSet map[Verb]bool

// NewVerbSet builds a set from the given verbs.
func NewVerbSet(verbs ...Verb) VerbSet {
	s := make(VerbSet, len(verbs))
	for _, v := range verbs {
		s[v] = true
	}
	return s
}

// Contains reports whether v is in the set. A nil set contains nothing.
func (s VerbSet) Contains(v Verb) bool {
	return s[v]
}

// DefaultBodyVerbs returns the verbs that carry request payloads unless a checker
// is configured otherwise: POST and PUT.
func DefaultBodyVerbs() VerbSet {
	return NewVerbSet(POST, PUT)
}

// SupportsRequestBody reports whether v carries a request body under the default
// classification.
func SupportsRequestBody(v Verb) bool {
	return DefaultBodyVerbs().Contains(v)
}

// CatchAllMediaType is the sentinel media type meaning "accepts or produces any
// content type". A target declaring it satisfies every media type check.
const CatchAllMediaType = "application/everything"
