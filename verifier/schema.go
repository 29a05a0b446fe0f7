package verifier

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/erraggy/apiverify/contract"
)

// Messages reported by SchemaPropertyChecker.
const (
	MsgRequestPropertyNotFound  = "Request schema property not found in target"
	MsgRequestPropertyType      = "Request schema property type differs in target"
	MsgResponsePropertyNotFound = "Response schema property not found in target"
	MsgResponsePropertyType     = "Response schema property type differs in target"
)

// SchemaPropertyChecker compares the top-level properties of JSON schemas for
// media types present on both sides, in request bodies and in 200 responses.
// Each reference property missing from the target is a warning, as is a shared
// property whose declared type differs. Schemas that are not JSON objects are
// ignored. Request bodies are only compared for BodyVerbs.
type SchemaPropertyChecker struct {
	// BodyVerbs are the verbs whose request bodies are compared.
	// Default: contract.DefaultBodyVerbs()
	BodyVerbs contract.VerbSet
}

// NewSchemaPropertyChecker creates a SchemaPropertyChecker with default settings.
func NewSchemaPropertyChecker() *SchemaPropertyChecker {
	return &SchemaPropertyChecker{BodyVerbs: contract.DefaultBodyVerbs()}
}

// Name implements Checker.
func (c *SchemaPropertyChecker) Name() string { return "schema-properties" }

// Check implements Checker.
func (c *SchemaPropertyChecker) Check(verb contract.Verb, reference, target *contract.Action, loc Location, max Severity) Findings {
	if reference == nil || target == nil {
		return Findings{}
	}
	r := newReporter(reference, loc, max)
	if carriesBody(c.BodyVerbs, verb) {
		compareBodies(r, reference.Body, target.Body, MsgRequestPropertyNotFound, MsgRequestPropertyType)
	}

	refOK, tgtOK := reference.Response("200"), target.Response("200")
	if refOK != nil && tgtOK != nil {
		compareBodies(r, refOK.Body, tgtOK.Body, MsgResponsePropertyNotFound, MsgResponsePropertyType)
	}
	return r.findings
}

func compareBodies(r *reporter, reference, target map[string]*contract.Body, missingMsg, typeMsg string) {
	for _, mediaType := range contract.SortedKeys(reference) {
		tgt, ok := target[mediaType]
		if !ok || tgt == nil || reference[mediaType] == nil {
			continue
		}
		refProps, ok := schemaProperties(reference[mediaType].Schema)
		if !ok {
			continue
		}
		tgtProps, ok := schemaProperties(tgt.Schema)
		if !ok {
			continue
		}
		for _, name := range contract.SortedKeys(refProps) {
			tgtType, found := tgtProps[name]
			if !found {
				r.add(SeverityWarning, KindMissing, missingMsg, name)
				continue
			}
			if refType := refProps[name]; refType != "" && tgtType != "" && refType != tgtType {
				r.add(SeverityWarning, KindMismatch, typeMsg, name)
			}
		}
	}
}

// schemaProperties returns the declared type of each top-level property of a
// JSON schema. The boolean is false when schema is not a JSON object.
func schemaProperties(schema any) (map[string]string, bool) {
	doc, ok := parseSchema(schema)
	if !ok {
		return nil, false
	}
	props := make(map[string]string)
	doc.Get("properties").ForEach(func(key, value gjson.Result) bool {
		props[key.String()] = propertyType(value)
		return true
	})
	return props, true
}

func parseSchema(schema any) (gjson.Result, bool) {
	var doc gjson.Result
	switch v := schema.(type) {
	case nil:
		return doc, false
	case string:
		if !gjson.Valid(v) {
			return doc, false
		}
		doc = gjson.Parse(v)
	case json.RawMessage:
		if !gjson.ValidBytes(v) {
			return doc, false
		}
		doc = gjson.ParseBytes(v)
	case []byte:
		if !gjson.ValidBytes(v) {
			return doc, false
		}
		doc = gjson.ParseBytes(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return doc, false
		}
		doc = gjson.ParseBytes(raw)
	}
	return doc, doc.IsObject()
}

// propertyType renders the "type" keyword, joining type arrays so that
// ["string", "null"] and ["null", "string"] compare equal.
func propertyType(prop gjson.Result) string {
	t := prop.Get("type")
	if !t.IsArray() {
		return t.String()
	}
	var types []string
	for _, item := range t.Array() {
		types = append(types, item.String())
	}
	sort.Strings(types)
	return strings.Join(types, ",")
}
