package contract

import (
	"github.com/erraggy/apiverify/apierrors"
)

// maxDepth bounds parent-chain walks so a malformed parent link cannot loop forever.
const maxDepth = 1 << 12

// Validate checks that api is a tree: no resource may be reachable from itself.
// Resources shared between unrelated branches are permitted since they are
// only read. The returned error is a *apierrors.CycleError.
func Validate(api *API) error {
	if api == nil {
		return nil
	}
	onPath := make(map[*Resource]bool)
	for _, r := range api.Resources {
		if err := validateResource(r, "", onPath); err != nil {
			return err
		}
	}
	return nil
}

func validateResource(r *Resource, prefix string, onPath map[*Resource]bool) error {
	if r == nil {
		return nil
	}
	path := prefix + r.RelativeURI
	if onPath[r] {
		return &apierrors.CycleError{Path: path}
	}
	onPath[r] = true
	defer delete(onPath, r)

	for _, child := range r.Resources {
		if err := validateResource(child, path, onPath); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every resource of api depth-first in declaration order, passing
// the full path of each. Walking stops early when fn returns false. Walk does
// not guard against cycles; call Validate first on untrusted trees.
func Walk(api *API, fn func(path string, r *Resource) bool) {
	if api == nil {
		return
	}
	for _, r := range api.Resources {
		if !walkResource(r, "", fn) {
			return
		}
	}
}

func walkResource(r *Resource, prefix string, fn func(string, *Resource) bool) bool {
	if r == nil {
		return true
	}
	path := prefix + r.RelativeURI
	if !fn(path, r) {
		return false
	}
	for _, child := range r.Resources {
		if !walkResource(child, path, fn) {
			return false
		}
	}
	return true
}

// Stats summarizes the size of a contract tree.
type Stats struct {
	Resources int
	Actions   int
}

// CollectStats counts the resources and actions of api.
func CollectStats(api *API) Stats {
	var s Stats
	Walk(api, func(_ string, r *Resource) bool {
		s.Resources++
		s.Actions += len(r.Actions)
		return true
	})
	return s
}
