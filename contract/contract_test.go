package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apiverify/apierrors"
)

func TestParseVerb(t *testing.T) {
	tests := []struct {
		input    string
		expected Verb
		wantErr  bool
	}{
		{"get", GET, false},
		{"POST", POST, false},
		{" patch ", PATCH, false},
		{"options", OPTIONS, false},
		{"fetch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVerb(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBodyVerbClassification(t *testing.T) {
	assert.True(t, SupportsRequestBody(POST))
	assert.True(t, SupportsRequestBody(PUT))
	assert.False(t, SupportsRequestBody(GET))
	assert.False(t, SupportsRequestBody(DELETE))

	set := DefaultBodyVerbs()
	set[PATCH] = true
	assert.False(t, DefaultBodyVerbs().Contains(PATCH), "callers must not be able to change the default set")

	var nilSet VerbSet
	assert.False(t, nilSet.Contains(POST))
}

func TestResourceTree(t *testing.T) {
	api := &API{}
	orders := api.AddResource(NewResource("/orders"))
	byID := orders.AddResource(NewResource("/{id}"))
	items := byID.AddResource(NewResource("/items"))

	assert.Equal(t, "/orders", orders.URI())
	assert.Equal(t, "/orders/{id}", byID.URI())
	assert.Equal(t, "/orders/{id}/items", items.URI())
	assert.Same(t, orders, byID.Parent())
	assert.Nil(t, orders.Parent())

	assert.Same(t, orders, api.Resource("/orders"))
	assert.Same(t, byID, orders.Resource("/{id}"))
	assert.Nil(t, api.Resource("/missing"))

	var nilAPI *API
	assert.Nil(t, nilAPI.Resource("/orders"))
}

func TestAddResourceMergesDuplicates(t *testing.T) {
	api := &API{}

	first := NewResource("/orders")
	first.SetAction(NewAction(GET))
	api.AddResource(first)

	second := NewResource("/orders")
	second.DisplayName = "Orders"
	second.SetAction(NewAction(POST))
	second.AddResource(NewResource("/{id}"))
	merged := api.AddResource(second)

	require.Len(t, api.Resources, 1)
	assert.Same(t, first, merged)
	assert.Equal(t, "Orders", merged.DisplayName)
	assert.Equal(t, []Verb{GET, POST}, merged.SortedVerbs())
	require.NotNil(t, merged.Resource("/{id}"))
	assert.Equal(t, "/orders/{id}", merged.Resource("/{id}").URI())
	assert.Same(t, merged, merged.Action(POST).Resource())
}

func TestSortedVerbs(t *testing.T) {
	r := NewResource("/things")
	for _, v := range []Verb{DELETE, GET, "PURGE", PUT} {
		r.SetAction(NewAction(v))
	}
	assert.Equal(t, []Verb{GET, PUT, DELETE, "PURGE"}, r.SortedVerbs())

	assert.Nil(t, NewResource("/empty").SortedVerbs())
}

func TestActionAccessors(t *testing.T) {
	var nilAction *Action
	assert.False(t, nilAction.HasBody())
	assert.Nil(t, nilAction.Response("200"))
	assert.Nil(t, nilAction.Resource())

	a := &Action{
		Verb: POST,
		Body: map[string]*Body{"application/json": {MediaType: "application/json"}},
		Responses: map[string]*Response{
			"200": {Code: "200"},
		},
	}
	assert.True(t, a.HasBody())
	require.NotNil(t, a.Response("200"))
	assert.False(t, a.Response("200").HasBody())
}

func TestValidate(t *testing.T) {
	t.Run("nil and empty trees are valid", func(t *testing.T) {
		assert.NoError(t, Validate(nil))
		assert.NoError(t, Validate(&API{}))
	})

	t.Run("shared subtree is not a cycle", func(t *testing.T) {
		shared := NewResource("/shared")
		a := NewResource("/a")
		b := NewResource("/b")
		a.Resources = append(a.Resources, shared)
		b.Resources = append(b.Resources, shared)
		assert.NoError(t, Validate(&API{Resources: []*Resource{a, b}}))
	})

	t.Run("self cycle", func(t *testing.T) {
		loop := NewResource("/loop")
		loop.Resources = append(loop.Resources, loop)

		err := Validate(&API{Resources: []*Resource{loop}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierrors.ErrCyclicTree))

		var cycleErr *apierrors.CycleError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, "/loop/loop", cycleErr.Path)
	})

	t.Run("indirect cycle", func(t *testing.T) {
		a := NewResource("/a")
		b := NewResource("/b")
		a.Resources = append(a.Resources, b)
		b.Resources = append(b.Resources, a)
		assert.ErrorIs(t, Validate(&API{Resources: []*Resource{a}}), apierrors.ErrCyclicTree)
	})
}

func TestWalkAndStats(t *testing.T) {
	api := &API{}
	orders := api.AddResource(NewResource("/orders"))
	orders.SetAction(NewAction(GET))
	orders.SetAction(NewAction(POST))
	byID := orders.AddResource(NewResource("/{id}"))
	byID.SetAction(NewAction(GET))
	api.AddResource(NewResource("/customers"))

	var paths []string
	Walk(api, func(path string, _ *Resource) bool {
		paths = append(paths, path)
		return true
	})
	assert.Equal(t, []string{"/orders", "/orders/{id}", "/customers"}, paths)

	stats := CollectStats(api)
	assert.Equal(t, 3, stats.Resources)
	assert.Equal(t, 3, stats.Actions)

	var visited int
	Walk(api, func(string, *Resource) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestSortedKeys(t *testing.T) {
	assert.Nil(t, SortedKeys(map[string]*Body(nil)))
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
