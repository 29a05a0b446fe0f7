// Package apierrors provides structured error types for the apiverify library.
//
// Import path: github.com/erraggy/apiverify/apierrors
//
// These error types enable programmatic error handling via [errors.Is] and
// [errors.As]. Note that discrepancies between two contract trees are never
// reported as errors: they are issues in a verifier report. The types here
// cover the few conditions that stop a comparison from producing a report.
//
// # Error Types
//
//   - [ParseError]: a tree document could not be decoded
//   - [CycleError]: a resource tree contains a resource that is its own ancestor
//   - [ConfigError]: invalid options or policy files
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrCyclicTree]: matches any [CycleError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	report, err := coordinator.Compare(reference, target)
//	if errors.Is(err, apierrors.ErrCyclicTree) {
//	    var cycleErr *apierrors.CycleError
//	    errors.As(err, &cycleErr)
//	    log.Fatalf("invalid %s tree at %s", cycleErr.Tree, cycleErr.Path)
//	}
package apierrors
