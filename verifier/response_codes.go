package verifier

import (
	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/internal/httputil"
)

// MsgResponseCodeNotFound is reported for each reference status code the target lacks.
const MsgResponseCodeNotFound = "Response code not found in target"

// ResponseCodeChecker verifies that every status code declared by the
// reference is also declared by the target. A missing success (2xx) code is an
// error since clients depend on it; any other missing code is a warning.
type ResponseCodeChecker struct{}

// NewResponseCodeChecker creates a ResponseCodeChecker.
func NewResponseCodeChecker() *ResponseCodeChecker {
	return &ResponseCodeChecker{}
}

// Name implements Checker.
func (ResponseCodeChecker) Name() string { return "response-codes" }

// Check implements Checker.
func (ResponseCodeChecker) Check(_ contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings {
	if reference == nil {
		return Findings{}
	}
	r := newReporter(reference, loc, max)
	for _, code := range contract.SortedKeys(reference.Responses) {
		if target.Response(code) != nil {
			continue
		}
		sev := SeverityWarning
		if httputil.IsSuccessCode(code) {
			sev = SeverityError
		}
		r.add(sev, KindMissing, MsgResponseCodeNotFound, code)
	}
	return r.findings
}
