package verifier

import (
	"github.com/erraggy/apiverify/contract"
)

// Verifier checks a published contract and an implementation against each
// other in both directions.
//
// The first pass compares the published contract (reference) with the
// implementation (target) and attributes issues to the implementation. The
// second pass swaps the trees and attributes issues to the contract: anything
// the implementation exposes that the contract does not document is reported
// there, capped at ContractMaxSeverity since an under-documented contract does
// not break existing clients. The two reports are merged.
type Verifier struct {
	// Checkers are run in both passes.
	Checkers []Checker
	// ImplementationMaxSeverity caps issues of the first pass.
	// Default: SeverityError (also used when left at the zero value)
	ImplementationMaxSeverity Severity
	// ContractMaxSeverity caps issues of the second pass.
	// Default: SeverityWarning (also used when left at the zero value)
	ContractMaxSeverity Severity
	// Logger receives debug traces and checker faults.
	// Default: NopLogger
	Logger Logger
}

// NewVerifier creates a Verifier running the given checkers.
func NewVerifier(checkers ...Checker) *Verifier {
	return &Verifier{
		Checkers:                  checkers,
		ImplementationMaxSeverity: SeverityError,
		ContractMaxSeverity:       SeverityWarning,
	}
}

// Verify runs both passes and returns the merged report.
func (v *Verifier) Verify(published, implemented *contract.API) (*Report, error) {
	logger := loggerOrNop(v.Logger)

	forward := &Coordinator{
		Checkers:    v.Checkers,
		Location:    LocationImplementation,
		MaxSeverity: v.ImplementationMaxSeverity.OrDefault(SeverityError),
		Logger:      logger.With("pass", "implementation"),
	}
	implReport, err := forward.Compare(published, implemented)
	if err != nil {
		return nil, err
	}

	backward := &Coordinator{
		Checkers:    v.Checkers,
		Location:    LocationContract,
		MaxSeverity: v.ContractMaxSeverity.OrDefault(SeverityWarning),
		Logger:      logger.With("pass", "contract"),
	}
	contractReport, err := backward.Compare(implemented, published)
	if err != nil {
		return nil, err
	}

	return implReport.Merge(contractReport), nil
}
