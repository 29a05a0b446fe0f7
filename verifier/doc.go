// Package verifier compares a reference contract tree with a target tree and
// reports where the target falls short.
//
// # Overview
//
// A [Coordinator] walks the reference resources depth-first, matching each to
// the target resource with the same relative URI. Unmatched resources and
// actions are reported directly; every matched pair of actions is handed to
// each configured [Checker]. Checkers are independent rules such as
// [ContentTypeChecker], which verifies that the target accepts and produces
// the media types the reference declares.
//
// Every [Issue] carries a [Severity], a [Location] naming the side it is
// attributed to, and a [Kind]. Issues are capped at the coordinator's maximum
// severity and deduplicated by message, subject, and path into a [Report]. A
// report with no error-severity issue is compatible.
//
// # Quick Start
//
//	report, err := verifier.CompareWithOptions(
//	    verifier.WithReferenceFilePath("contract.yaml"),
//	    verifier.WithTargetFilePath("implementation.yaml"),
//	    verifier.WithCheckers(verifier.DefaultCheckers()...),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range report.Issues() {
//	    fmt.Println(issue)
//	}
//
// Or using a reusable Coordinator instance:
//
//	c := verifier.New()
//	c.Checkers = verifier.DefaultCheckers()
//	c.MaxSeverity = verifier.SeverityWarning
//	report, _ := c.Compare(reference, target)
//
// # Faults
//
// A checker that panics does not abort the comparison. The panic is recovered
// and reported as a single [KindFault] issue at error severity, which is never
// capped, so a broken rule always makes the report incompatible.
//
// # Both Directions
//
// [Verifier] runs a comparison in each direction: the published contract
// against the implementation, then the implementation against the contract.
// Findings of the second pass are attributed to the contract and capped at
// warning severity.
//
// # Policies
//
// A [Policy] loaded from YAML or TOML selects checkers, the severity cap,
// the location, and strict mode. [Policy.Options] turns it into options for
// [CompareWithOptions].
package verifier
