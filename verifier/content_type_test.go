package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apiverify/contract"
)

func TestContentTypeChecker(t *testing.T) {
	tests := []struct {
		name      string
		verb      contract.Verb
		reference *contract.Action
		target    *contract.Action
		loc       Location
		max       Severity
		errors    []string
		warnings  []string
	}{
		{
			name:      "target without body misses every media type",
			verb:      contract.POST,
			reference: newTestAction(contract.POST, withBody("application/json", "application/xml")),
			target:    newTestAction(contract.POST),
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{"application/json", "application/xml"},
		},
		{
			name:      "partial media type coverage",
			verb:      contract.PUT,
			reference: newTestAction(contract.PUT, withBody("application/json", "application/xml")),
			target:    newTestAction(contract.PUT, withBody("application/xml")),
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{"application/json"},
		},
		{
			name:      "catch-all accepts everything",
			verb:      contract.POST,
			reference: newTestAction(contract.POST, withBody("application/json", "application/xml")),
			target:    newTestAction(contract.POST, withBody(contract.CatchAllMediaType)),
			loc:       LocationImplementation,
			max:       SeverityError,
		},
		{
			name:      "contract location is skipped",
			verb:      contract.POST,
			reference: newTestAction(contract.POST, withBody("application/json"), withResponse("200", "application/json")),
			target:    newTestAction(contract.POST),
			loc:       LocationContract,
			max:       SeverityError,
		},
		{
			name:      "request bodies ignored for non-body verbs",
			verb:      contract.GET,
			reference: newTestAction(contract.GET, withBody("application/json")),
			target:    newTestAction(contract.GET),
			loc:       LocationImplementation,
			max:       SeverityError,
		},
		{
			name:      "missing 200 is one coarse issue",
			verb:      contract.GET,
			reference: newTestAction(contract.GET, withResponse("200", "application/json", "text/csv")),
			target:    newTestAction(contract.GET, withResponse("404")),
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{""},
		},
		{
			name:      "no responses at all is one coarse issue",
			verb:      contract.DELETE,
			reference: newTestAction(contract.DELETE, withResponse("200", "application/json")),
			target:    newTestAction(contract.DELETE),
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{""},
		},
		{
			name:      "200 media types reported individually",
			verb:      contract.GET,
			reference: newTestAction(contract.GET, withResponse("200", "application/json", "text/csv")),
			target:    newTestAction(contract.GET, withResponse("200", "text/csv")),
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{"application/json"},
		},
		{
			name:      "200 catch-all",
			verb:      contract.GET,
			reference: newTestAction(contract.GET, withResponse("200", "application/json")),
			target:    newTestAction(contract.GET, withResponse("200", contract.CatchAllMediaType)),
			loc:       LocationImplementation,
			max:       SeverityError,
		},
		{
			name:      "reference 200 without body needs nothing",
			verb:      contract.GET,
			reference: newTestAction(contract.GET, withResponse("200")),
			target:    newTestAction(contract.GET),
			loc:       LocationImplementation,
			max:       SeverityError,
		},
		{
			name:      "severity is clamped",
			verb:      contract.POST,
			reference: newTestAction(contract.POST, withBody("application/json")),
			target:    newTestAction(contract.POST),
			loc:       LocationImplementation,
			max:       SeverityWarning,
			warnings:  []string{"application/json"},
		},
		{
			name:      "nil target",
			verb:      contract.POST,
			reference: newTestAction(contract.POST, withBody("application/json"), withResponse("200", "application/json")),
			target:    nil,
			loc:       LocationImplementation,
			max:       SeverityError,
			errors:    []string{"application/json", ""},
		},
	}

	c := NewContentTypeChecker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := c.Check(tt.verb, tt.reference, tt.target, tt.loc, tt.max)
			assert.Equal(t, tt.errors, subjects(f.Errors.Items()))
			assert.Equal(t, tt.warnings, subjects(f.Warnings.Items()))
			for _, issue := range f.Issues() {
				assert.Equal(t, KindMissing, issue.Kind)
				assert.Equal(t, tt.loc, issue.Location)
				assert.Same(t, tt.reference, issue.Action)
			}
		})
	}
}

func TestContentTypeCheckerMessages(t *testing.T) {
	ref := newTestAction(contract.POST, withBody("application/json"), withResponse("200", "application/json"))
	f := NewContentTypeChecker().Check(contract.POST, ref, newTestAction(contract.POST), LocationImplementation, SeverityError)

	require.Equal(t, 2, f.Errors.Len())
	assert.Equal(t, MsgBodyNotFound, f.Errors.Items()[0].Message)
	assert.Equal(t, MsgResponseBodyNotFound, f.Errors.Items()[1].Message)
}

func TestContentTypeCheckerConfiguration(t *testing.T) {
	ref := newTestAction(contract.PATCH, withBody("application/json"))

	c := NewContentTypeChecker()
	f := c.Check(contract.PATCH, ref, newTestAction(contract.PATCH), LocationImplementation, SeverityError)
	assert.Equal(t, 0, f.Len(), "PATCH carries no body by default")

	c.BodyVerbs = contract.NewVerbSet(contract.PATCH)
	f = c.Check(contract.PATCH, ref, newTestAction(contract.PATCH), LocationImplementation, SeverityError)
	assert.Equal(t, 1, f.Len())

	c.CatchAll = "*/*"
	f = c.Check(contract.PATCH, ref, newTestAction(contract.PATCH, withBody("*/*")), LocationImplementation, SeverityError)
	assert.Equal(t, 0, f.Len())

	var zero ContentTypeChecker
	f = zero.Check(contract.POST, newTestAction(contract.POST, withBody("a/b")),
		newTestAction(contract.POST, withBody(contract.CatchAllMediaType)), LocationImplementation, SeverityError)
	assert.Equal(t, 0, f.Len(), "zero value uses the defaults")
}
