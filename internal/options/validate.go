// Package options provides shared utilities for option validation across packages.
package options

import "errors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg and multiSourceMsg are the error messages for zero and for more
// than one source.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	switch CountSet(sources...) {
	case 0:
		return errors.New(noSourceMsg)
	case 1:
		return nil
	default:
		return errors.New(multiSourceMsg)
	}
}

// CountSet returns how many of flags are true.
func CountSet(flags ...bool) int {
	n := 0
	for _, set := range flags {
		if set {
			n++
		}
	}
	return n
}
