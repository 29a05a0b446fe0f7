package verifier

import (
	"github.com/erraggy/apiverify/contract"
)

type actionOption func(*contract.Action)

func newTestAction(verb contract.Verb, opts ...actionOption) *contract.Action {
	a := contract.NewAction(verb)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func withBody(mediaTypes ...string) actionOption {
	return func(a *contract.Action) {
		if a.Body == nil {
			a.Body = make(map[string]*contract.Body)
		}
		for _, mt := range mediaTypes {
			a.Body[mt] = &contract.Body{MediaType: mt}
		}
	}
}

func withSchema(mediaType string, schema any) actionOption {
	return func(a *contract.Action) {
		if a.Body == nil {
			a.Body = make(map[string]*contract.Body)
		}
		a.Body[mediaType] = &contract.Body{MediaType: mediaType, Schema: schema}
	}
}

func withResponse(code string, mediaTypes ...string) actionOption {
	return func(a *contract.Action) {
		if a.Responses == nil {
			a.Responses = make(map[string]*contract.Response)
		}
		resp := &contract.Response{Code: code}
		for _, mt := range mediaTypes {
			if resp.Body == nil {
				resp.Body = make(map[string]*contract.Body)
			}
			resp.Body[mt] = &contract.Body{MediaType: mt}
		}
		a.Responses[code] = resp
	}
}

func withResponseSchema(code, mediaType string, schema any) actionOption {
	return func(a *contract.Action) {
		if a.Responses == nil {
			a.Responses = make(map[string]*contract.Response)
		}
		a.Responses[code] = &contract.Response{
			Code: code,
			Body: map[string]*contract.Body{mediaType: {MediaType: mediaType, Schema: schema}},
		}
	}
}

func withQuery(name, typ string, required bool) actionOption {
	return func(a *contract.Action) {
		if a.QueryParameters == nil {
			a.QueryParameters = make(map[string]*contract.Parameter)
		}
		a.QueryParameters[name] = &contract.Parameter{Name: name, Type: typ, Required: required}
	}
}

func withHeader(name, typ string, required bool) actionOption {
	return func(a *contract.Action) {
		if a.Headers == nil {
			a.Headers = make(map[string]*contract.Parameter)
		}
		a.Headers[name] = &contract.Parameter{Name: name, Type: typ, Required: required}
	}
}

func newTestResource(uri string, actions []*contract.Action, children ...*contract.Resource) *contract.Resource {
	r := contract.NewResource(uri)
	for _, a := range actions {
		r.SetAction(a)
	}
	for _, child := range children {
		r.AddResource(child)
	}
	return r
}

func newTestAPI(resources ...*contract.Resource) *contract.API {
	api := &contract.API{}
	for _, r := range resources {
		api.AddResource(r)
	}
	return api
}

func subjects(issues []Issue) []string {
	var out []string
	for _, issue := range issues {
		out = append(out, issue.Subject)
	}
	return out
}
