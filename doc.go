// Package apiverify checks that an API implementation satisfies its contract.
//
// A contract and an implementation are both described as API trees: nested
// resources keyed by relative URI, each carrying actions (HTTP verbs) with
// request bodies, responses, headers, and query parameters. apiverify walks
// a reference tree alongside a target tree, runs a set of pluggable checkers
// on every action the two share, and produces a deduplicated report ranked by
// severity. The target is compatible when no error-level issue remains.
//
// # Packages
//
//   - contract: the API tree model and the YAML/JSON tree document decoder
//   - contract/openapi: builds API trees from OpenAPI 3.x documents
//   - verifier: the comparison coordinator, the built-in checkers, reports,
//     policies, and the two-way Verifier
//   - apierrors: structured error types shared by all packages
//
// # Quick Start
//
// Compare two tree documents with every built-in checker:
//
//	import "github.com/erraggy/apiverify/verifier"
//
//	report, err := verifier.CompareWithOptions(
//		verifier.WithReferenceFilePath("contract.yaml"),
//		verifier.WithTargetFilePath("service.yaml"),
//		verifier.WithCheckers(verifier.DefaultCheckers()...),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range report.Issues() {
//		fmt.Println(issue)
//	}
//	fmt.Println(report.Summary())
//
// Check a published contract and its implementation in both directions:
//
//	v := verifier.NewVerifier(verifier.DefaultCheckers()...)
//	report, err := v.Verify(published, implemented)
//
// # Command Line
//
// The apiverify command wraps the library:
//
//	apiverify verify contract.yaml service.yaml
//	apiverify verify --bidirectional --policy policy.toml published.yaml openapi.yaml
//	apiverify mcp
//
// The mcp command serves the verify tool over the Model Context Protocol.
package apiverify
