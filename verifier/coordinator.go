package verifier

import (
	"errors"
	"fmt"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/contract"
)

// Messages reported by the coordinator itself.
const (
	MsgResourceNotFound = "Resource not found in target"
	MsgActionNotFound   = "Action not found in target"
	MsgExtraResource    = "Resource not declared in reference"
	MsgExtraAction      = "Action not declared in reference"
)

// Coordinator walks a reference tree against a target tree and runs the
// configured checkers on every pair of matching actions.
type Coordinator struct {
	// Checkers are run in order on every matched action pair.
	// Default: none, so a comparison reports only missing resources and actions.
	Checkers []Checker
	// Location is the side issues are attributed to.
	// Default: LocationImplementation
	Location Location
	// MaxSeverity caps the severity of every issue except checker faults,
	// which are always reported as errors so that a broken checker makes the
	// report incompatible even under a lower cap.
	// Issues above it are lowered, never dropped.
	// Default: SeverityError (also used when left at the zero value)
	MaxSeverity Severity
	// Strict also reports resources and actions present only in the target,
	// as informational extra issues.
	Strict bool
	// Logger receives debug traces and checker faults.
	// Default: NopLogger
	Logger Logger
}

// New creates a new Coordinator with default settings.
func New() *Coordinator {
	return &Coordinator{
		Location:    LocationImplementation,
		MaxSeverity: SeverityError,
	}
}

// Compare checks target against reference and returns the resulting report.
//
// Reference resources are visited depth-first in declaration order and matched
// to target resources by relative URI among siblings. A missing resource is
// reported once and its subtree skipped; a missing action is reported once.
// Matching actions are passed to every checker, verbs in canonical order.
//
// Compare fails when either tree contains a cycle or when MaxSeverity or
// Location is set to an undefined value. Neither tree is modified.
func (c *Coordinator) Compare(reference, target *contract.API) (*Report, error) {
	max := c.MaxSeverity.OrDefault(SeverityError)
	if !max.IsValid() {
		return nil, &apierrors.ConfigError{Option: "max_severity", Value: int(c.MaxSeverity), Message: "unknown severity level"}
	}
	if c.Location != LocationImplementation && c.Location != LocationContract {
		return nil, &apierrors.ConfigError{Option: "location", Value: int(c.Location), Message: "unknown location"}
	}
	if err := validateTree("reference", reference); err != nil {
		return nil, err
	}
	if err := validateTree("target", target); err != nil {
		return nil, err
	}

	run := &comparison{
		coordinator: c,
		max:         max,
		logger:      loggerOrNop(c.Logger),
		report: &Report{
			referenceStats: contract.CollectStats(reference),
			targetStats:    contract.CollectStats(target),
		},
	}
	run.resources(resourcesOf(reference), resourcesOf(target), "")

	run.logger.Debug("comparison complete",
		"errors", run.report.ErrorCount(),
		"warnings", run.report.WarningCount(),
	)
	return run.report, nil
}

func validateTree(side string, api *contract.API) error {
	err := contract.Validate(api)
	if err == nil {
		return nil
	}
	var cycleErr *apierrors.CycleError
	if errors.As(err, &cycleErr) {
		cycleErr.Tree = side
	}
	return fmt.Errorf("verifier: %w", err)
}

func resourcesOf(api *contract.API) []*contract.Resource {
	if api == nil {
		return nil
	}
	return api.Resources
}

// comparison is the state of one Compare call.
type comparison struct {
	coordinator *Coordinator
	max         Severity
	logger      Logger
	report      *Report
}

func (run *comparison) resources(refs, targets []*contract.Resource, prefix string) {
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		path := prefix + ref.RelativeURI
		tgt := matchResource(targets, ref.RelativeURI)
		if tgt == nil {
			run.add(NewIssue(SeverityError, run.coordinator.Location, KindMissing, MsgResourceNotFound, ref, nil), path, "")
			continue
		}
		run.actions(ref, tgt, path)
		run.resources(ref.Resources, tgt.Resources, path)
	}

	if !run.coordinator.Strict {
		return
	}
	for _, tgt := range targets {
		if tgt == nil || matchResource(refs, tgt.RelativeURI) != nil {
			continue
		}
		run.add(NewIssue(SeverityInfo, run.coordinator.Location, KindExtra, MsgExtraResource, nil, nil), prefix+tgt.RelativeURI, "")
	}
}

func (run *comparison) actions(ref, tgt *contract.Resource, path string) {
	for _, verb := range ref.SortedVerbs() {
		refAction := ref.Actions[verb]
		actionPath := string(verb) + " " + path
		tgtAction := tgt.Action(verb)
		if tgtAction == nil {
			run.add(NewIssue(SeverityError, run.coordinator.Location, KindMissing, MsgActionNotFound, ref, refAction), actionPath, "")
			continue
		}
		for _, checker := range run.coordinator.Checkers {
			if checker != nil {
				run.check(checker, verb, refAction, tgtAction, actionPath)
			}
		}
	}

	if !run.coordinator.Strict {
		return
	}
	for _, verb := range tgt.SortedVerbs() {
		if ref.Action(verb) == nil {
			run.add(NewIssue(SeverityInfo, run.coordinator.Location, KindExtra, MsgExtraAction, ref, nil), string(verb)+" "+path, "")
		}
	}
}

func (run *comparison) check(checker Checker, verb contract.Verb, ref, tgt *contract.Action, path string) {
	name, findings, err := invoke(checker, verb, ref, tgt, run.coordinator.Location, run.max)
	if err != nil {
		run.logger.Warn("checker failed", "checker", name, "path", path, "error", err)
		fault := NewIssue(SeverityError, run.coordinator.Location, KindFault,
			fmt.Sprintf("checker %s failed: %v", name, err), nil, ref)
		fault.Path = path
		fault.Checker = name
		run.report.add(fault)
		return
	}
	run.logger.Debug("checked action", "path", path, "checker", name, "issues", findings.Len())
	for _, issue := range findings.Issues() {
		run.add(issue, path, name)
	}
}

// invoke runs a checker, converting a panic into an error so that one broken
// rule cannot abort the comparison or silently pass.
func invoke(checker Checker, verb contract.Verb, ref, tgt *contract.Action, loc Location, max Severity) (name string, findings Findings, err error) {
	name = "unknown"
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	name = checker.Name()
	return name, checker.Check(verb, ref, tgt, loc, max), nil
}

// add clamps issue, stamps the traversal path and checker name where the issue
// does not carry its own, and records it.
func (run *comparison) add(issue Issue, path, checker string) {
	issue.Severity = issue.Severity.Clamp(run.max)
	if issue.Path == "" {
		issue.Path = path
	}
	if issue.Checker == "" {
		issue.Checker = checker
	}
	run.report.add(issue)
}

func matchResource(resources []*contract.Resource, relativeURI string) *contract.Resource {
	for _, r := range resources {
		if r != nil && r.RelativeURI == relativeURI {
			return r
		}
	}
	return nil
}
