package verifier

import (
	"encoding/json"
	"fmt"

	"github.com/erraggy/apiverify/contract"
)

// Report is the result of a comparison: deduplicated errors and warnings in
// the order they were found. A Report is not modified after it is returned;
// methods that derive new reports leave the receiver untouched.
type Report struct {
	errors         IssueSet
	warnings       IssueSet
	referenceStats contract.Stats
	targetStats    contract.Stats
}

// NewReport builds a report from issues, partitioning them by severity and
// dropping duplicates.
func NewReport(issues ...Issue) *Report {
	r := &Report{}
	for _, issue := range issues {
		r.add(issue)
	}
	return r
}

func (r *Report) add(issue Issue) {
	if issue.Severity >= SeverityError {
		r.errors.Add(issue)
		return
	}
	r.warnings.Add(issue)
}

// Errors returns the error-severity issues in discovery order.
func (r *Report) Errors() []Issue {
	return r.errors.Items()
}

// Warnings returns the issues below error severity in discovery order.
func (r *Report) Warnings() []Issue {
	return r.warnings.Items()
}

// Issues returns all issues, errors first.
func (r *Report) Issues() []Issue {
	return append(r.Errors(), r.Warnings()...)
}

// ErrorCount returns the number of distinct errors.
func (r *Report) ErrorCount() int {
	return r.errors.Len()
}

// WarningCount returns the number of distinct warnings, including
// informational issues.
func (r *Report) WarningCount() int {
	return r.warnings.Len()
}

// InfoCount returns the number of informational issues.
func (r *Report) InfoCount() int {
	n := 0
	for _, issue := range r.warnings.issues {
		if issue.Severity == SeverityInfo {
			n++
		}
	}
	return n
}

// Len returns the total number of distinct issues.
func (r *Report) Len() int {
	return r.errors.Len() + r.warnings.Len()
}

// Compatible reports whether the target satisfies the reference, that is
// whether no error-severity issue was found.
func (r *Report) Compatible() bool {
	return r.errors.Len() == 0
}

// ReferenceStats describes the size of the reference tree that was compared.
func (r *Report) ReferenceStats() contract.Stats {
	return r.referenceStats
}

// TargetStats describes the size of the target tree that was compared.
func (r *Report) TargetStats() contract.Stats {
	return r.targetStats
}

// ByLocation groups all issues by location, errors first within each group.
func (r *Report) ByLocation() map[Location][]Issue {
	out := make(map[Location][]Issue)
	for _, issue := range r.Issues() {
		out[issue.Location] = append(out[issue.Location], issue)
	}
	return out
}

// ByKind groups all issues by kind, errors first within each group.
func (r *Report) ByKind() map[Kind][]Issue {
	out := make(map[Kind][]Issue)
	for _, issue := range r.Issues() {
		out[issue.Kind] = append(out[issue.Kind], issue)
	}
	return out
}

// Filter returns a new report holding only the issues for which keep returns true.
func (r *Report) Filter(keep func(Issue) bool) *Report {
	out := &Report{referenceStats: r.referenceStats, targetStats: r.targetStats}
	for _, issue := range r.Issues() {
		if keep(issue) {
			out.add(issue)
		}
	}
	return out
}

// Merge returns a new report holding the issues of r followed by those of
// other, deduplicated. Statistics are taken from r.
func (r *Report) Merge(other *Report) *Report {
	out := &Report{referenceStats: r.referenceStats, targetStats: r.targetStats}
	for _, issue := range r.Issues() {
		out.add(issue)
	}
	if other != nil {
		for _, issue := range other.Issues() {
			out.add(issue)
		}
	}
	return out
}

// Summary returns a one-line description such as "incompatible: 2 errors, 1 warning".
func (r *Report) Summary() string {
	verdict := "compatible"
	if !r.Compatible() {
		verdict = "incompatible"
	}
	return fmt.Sprintf("%s: %s, %s", verdict,
		plural(r.ErrorCount(), "error"), plural(r.WarningCount(), "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// IssueDocument is the serialized form of an Issue.
type IssueDocument struct {
	Severity    string `json:"severity" yaml:"severity"`
	Location    string `json:"location" yaml:"location"`
	Kind        string `json:"kind" yaml:"kind"`
	Message     string `json:"message" yaml:"message"`
	Subject     string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Checker     string `json:"checker,omitempty" yaml:"checker,omitempty"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

// ReportDocument is the serialized form of a Report.
type ReportDocument struct {
	Compatible   bool            `json:"compatible" yaml:"compatible"`
	ErrorCount   int             `json:"errorCount" yaml:"errorCount"`
	WarningCount int             `json:"warningCount" yaml:"warningCount"`
	Errors       []IssueDocument `json:"errors" yaml:"errors"`
	Warnings     []IssueDocument `json:"warnings" yaml:"warnings"`
}

// NewIssueDocument converts issue to its serialized form.
func NewIssueDocument(issue Issue) IssueDocument {
	return IssueDocument{
		Severity:    issue.Severity.String(),
		Location:    issue.Location.String(),
		Kind:        string(issue.Kind),
		Message:     issue.Message,
		Subject:     issue.Subject,
		Path:        issue.Path,
		Checker:     issue.Checker,
		Fingerprint: issue.Fingerprint(),
	}
}

// Document returns the serialized form of the report.
func (r *Report) Document() ReportDocument {
	doc := ReportDocument{
		Compatible:   r.Compatible(),
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		Errors:       []IssueDocument{},
		Warnings:     []IssueDocument{},
	}
	for _, issue := range r.errors.issues {
		doc.Errors = append(doc.Errors, NewIssueDocument(issue))
	}
	for _, issue := range r.warnings.issues {
		doc.Warnings = append(doc.Warnings, NewIssueDocument(issue))
	}
	return doc
}

// MarshalJSON implements json.Marshaler.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Document())
}

// MarshalYAML implements yaml.Marshaler.
func (r *Report) MarshalYAML() (any, error) {
	return r.Document(), nil
}
