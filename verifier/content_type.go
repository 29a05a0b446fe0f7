package verifier

import (
	"github.com/erraggy/apiverify/contract"
)

// Messages reported by ContentTypeChecker.
const (
	MsgBodyNotFound         = "Body required but not found in target"
	MsgResponseBodyNotFound = "Response Body required but not found in target"
)

// ContentTypeChecker verifies that the target accepts every request media type
// and produces every 200-response media type the reference declares.
//
// It only applies to implementations: with LocationContract it reports nothing.
// A target declaring CatchAll satisfies every media type of the phase it
// appears in.
type ContentTypeChecker struct {
	// BodyVerbs are the verbs whose request bodies are checked.
	// Default: contract.DefaultBodyVerbs()
	BodyVerbs contract.VerbSet
	// CatchAll is the media type that matches any other.
	// Default: contract.CatchAllMediaType
	CatchAll string
}

// NewContentTypeChecker creates a ContentTypeChecker with default settings.
func NewContentTypeChecker() *ContentTypeChecker {
	return &ContentTypeChecker{
		BodyVerbs: contract.DefaultBodyVerbs(),
		CatchAll:  contract.CatchAllMediaType,
	}
}

// Name implements Checker.
func (c *ContentTypeChecker) Name() string { return "content-type" }

// Check implements Checker.
func (c *ContentTypeChecker) Check(verb contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings {
	if loc == LocationContract || reference == nil {
		return Findings{}
	}
	r := newReporter(reference, loc, max)

	if carriesBody(c.BodyVerbs, verb) && reference.HasBody() && !c.acceptsAll(targetBody(target)) {
		for _, mediaType := range contract.SortedKeys(reference.Body) {
			if _, ok := targetBody(target)[mediaType]; !ok {
				r.add(SeverityError, KindMissing, MsgBodyNotFound, mediaType)
			}
		}
	}

	refOK := reference.Response("200")
	if !refOK.HasBody() {
		return r.findings
	}
	tgtOK := target.Response("200")
	if tgtOK == nil {
		r.add(SeverityError, KindMissing, MsgResponseBodyNotFound, "")
		return r.findings
	}
	if c.acceptsAll(tgtOK.Body) {
		return r.findings
	}
	for _, mediaType := range contract.SortedKeys(refOK.Body) {
		if _, ok := tgtOK.Body[mediaType]; !ok {
			r.add(SeverityError, KindMissing, MsgResponseBodyNotFound, mediaType)
		}
	}
	return r.findings
}

// carriesBody reports whether verb has its request body checked. A nil set
// falls back to the default classification.
func carriesBody(verbs contract.VerbSet, verb contract.Verb) bool {
	if verbs == nil {
		return contract.SupportsRequestBody(verb)
	}
	return verbs.Contains(verb)
}

func (c *ContentTypeChecker) acceptsAll(bodies map[string]*contract.Body) bool {
	catchAll := c.CatchAll
	if catchAll == "" {
		catchAll = contract.CatchAllMediaType
	}
	_, ok := bodies[catchAll]
	return ok
}

func targetBody(a *contract.Action) map[string]*contract.Body {
	if a == nil {
		return nil
	}
	return a.Body
}
