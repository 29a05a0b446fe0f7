package verifier

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/internal/severity"
)

// Severity indicates how serious an issue is.
type Severity = severity.Severity

const (
	// SeverityInfo indicates an informational finding
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates a discrepancy that does not break compatibility
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates an incompatibility
	SeverityError = severity.SeverityError
)

// ParseSeverity converts a case-insensitive level name into a Severity.
func ParseSeverity(name string) (Severity, error) {
	return severity.Parse(name)
}

// Location says which side of a comparison an issue is attributed to.
type Location int

const (
	// LocationImplementation attributes the issue to the target implementation
	LocationImplementation Location = iota
	// LocationContract attributes the issue to the contract itself
	LocationContract
)

// String returns "implementation" or "contract".
func (l Location) String() string {
	switch l {
	case LocationImplementation:
		return "implementation"
	case LocationContract:
		return "contract"
	default:
		return "unknown"
	}
}

// ParseLocation converts a case-insensitive location name into a Location.
func ParseLocation(name string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "implementation", "impl":
		return LocationImplementation, nil
	case "contract":
		return LocationContract, nil
	default:
		return 0, fmt.Errorf("verifier: unknown location %q (valid: implementation, contract)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Kind classifies what is wrong.
type Kind string

const (
	// KindMissing indicates an element of the reference absent from the target
	KindMissing Kind = "missing"
	// KindMismatch indicates an element present on both sides that disagrees
	KindMismatch Kind = "mismatch"
	// KindExtra indicates an element present only in the target
	KindExtra Kind = "extra"
	// KindFault indicates a checker that failed while running
	KindFault Kind = "fault"
)

// Kinds returns every issue kind in report order.
func Kinds() []Kind {
	return []Kind{KindMissing, KindMismatch, KindExtra, KindFault}
}

// Issue is one discrepancy found while comparing a reference with a target.
type Issue struct {
	// Severity is the (possibly clamped) severity
	Severity Severity
	// Location is the side the issue is attributed to
	Location Location
	// Kind classifies the discrepancy
	Kind Kind
	// Message is a human-readable description
	Message string
	// Subject is the keyed entry the issue is about: a media type, status code,
	// parameter or property name. Empty for whole-element findings.
	Subject string
	// Path locates the element, e.g. "POST /orders/{id}"
	Path string
	// Checker names the rule that reported the issue
	Checker string
	// Resource is the offending reference resource, if any
	Resource *contract.Resource
	// Action is the offending reference action, if any
	Action *contract.Action
}

// NewIssue creates an issue for the given reference element.
func NewIssue(sev Severity, loc Location, kind Kind, message string, resource *contract.Resource, action *contract.Action) Issue {
	if resource == nil && action != nil {
		resource = action.Resource()
	}
	return Issue{
		Severity: sev,
		Location: loc,
		Kind:     kind,
		Message:  message,
		Resource: resource,
		Action:   action,
	}
}

// WithSubject returns a copy of the issue with Subject set.
func (i Issue) WithSubject(subject string) Issue {
	i.Subject = subject
	return i
}

// Key identifies the issue for deduplication. Two issues with the same message,
// subject, and path are the same issue regardless of severity or checker.
func (i Issue) Key() string {
	return i.Message + "\x00" + i.Subject + "\x00" + i.Path
}

// Fingerprint returns a stable hex digest of Key, suitable for baselines that
// suppress known issues across runs.
func (i Issue) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(i.Key()))
}

// String returns a formatted single-line representation of the issue.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case SeverityError:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "·"
	}

	path := i.Path
	if path == "" {
		path = "-"
	}
	msg := fmt.Sprintf("%s %s [%s] %s", symbol, path, i.Kind, i.Message)
	if i.Subject != "" {
		msg += ": " + i.Subject
	}
	return msg
}

// IssueSet is an insertion-ordered set of issues, deduplicated by Key.
// The zero value is an empty set ready to use.
type IssueSet struct {
	issues []Issue
	index  map[string]struct{}
}

// Add inserts issue unless an issue with the same key is already present.
// It reports whether the issue was added.
func (s *IssueSet) Add(issue Issue) bool {
	key := issue.Key()
	if _, ok := s.index[key]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[key] = struct{}{}
	s.issues = append(s.issues, issue)
	return true
}

// AddAll inserts every issue in order.
func (s *IssueSet) AddAll(issues ...Issue) {
	for _, issue := range issues {
		s.Add(issue)
	}
}

// Contains reports whether an issue with the same key is present.
func (s *IssueSet) Contains(issue Issue) bool {
	_, ok := s.index[issue.Key()]
	return ok
}

// Len returns the number of distinct issues.
func (s *IssueSet) Len() int {
	return len(s.issues)
}

// Items returns a copy of the issues in insertion order.
func (s *IssueSet) Items() []Issue {
	if len(s.issues) == 0 {
		return nil
	}
	out := make([]Issue, len(s.issues))
	copy(out, s.issues)
	return out
}
