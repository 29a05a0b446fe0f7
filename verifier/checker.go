package verifier

import (
	"github.com/erraggy/apiverify/contract"
)

// Checker is one rule applied to a pair of matching actions.
//
// Check receives the verb, the reference action, the target action with the
// same verb, the location issues are attributed to, and the severity ceiling.
// Implementations must not mutate either action and must not depend on other
// checkers having run. A target action may be sparsely populated; nil maps are
// equivalent to empty ones.
type Checker interface {
	// Name identifies the checker in reports and configuration
	Name() string
	// Check compares target against reference
	Check(verb contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings
}

// Findings is what a single checker reports for one action pair, partitioned
// by severity.
type Findings struct {
	// Warnings holds issues below error severity
	Warnings IssueSet
	// Errors holds error-severity issues
	Errors IssueSet
}

// Add places issue in Errors or Warnings according to its severity.
func (f *Findings) Add(issue Issue) {
	if issue.Severity >= SeverityError {
		f.Errors.Add(issue)
		return
	}
	f.Warnings.Add(issue)
}

// Len returns the total number of issues.
func (f Findings) Len() int {
	return f.Errors.Len() + f.Warnings.Len()
}

// Issues returns errors followed by warnings.
func (f Findings) Issues() []Issue {
	return append(f.Errors.Items(), f.Warnings.Items()...)
}

// CheckFunc is the signature of Checker.Check.
type CheckFunc func(verb contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings

// CheckerFunc adapts fn into a Checker with the given name.
func CheckerFunc(name string, fn CheckFunc) Checker {
	return &funcChecker{name: name, fn: fn}
}

type funcChecker struct {
	name string
	fn   CheckFunc
}

func (c *funcChecker) Name() string { return c.name }

func (c *funcChecker) Check(verb contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings {
	return c.fn(verb, reference, target, loc, max)
}

// reporter accumulates findings for one Check call, clamping severities.
type reporter struct {
	loc      Location
	max      Severity
	action   *contract.Action
	findings Findings
}

func newReporter(reference *contract.Action, loc Location, max Severity) *reporter {
	return &reporter{loc: loc, max: max, action: reference}
}

func (r *reporter) add(sev Severity, kind Kind, message, subject string) {
	issue := NewIssue(sev.Clamp(r.max), r.loc, kind, message, nil, r.action).WithSubject(subject)
	r.findings.Add(issue)
}
