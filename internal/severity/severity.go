// Package severity provides the ordered severity scale shared by the contract
// verifier, its checkers, and the reporting layers.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error
//
// A configured maximum acts as a ceiling: findings above it are lowered to
// the maximum via [Severity.Clamp], never dropped.
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates the severity level of an issue found while comparing
// a reference contract with a target. The zero value is not a valid level.
type Severity int

const (
	// SeverityInfo indicates an informational finding, such as an element
	// present only in the target.
	SeverityInfo Severity = iota + 1

	// SeverityWarning indicates a discrepancy that should be reviewed but
	// does not break compatibility on its own.
	SeverityWarning

	// SeverityError indicates an incompatibility. Any error-level issue makes
	// a report incompatible.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined levels.
func (s Severity) IsValid() bool {
	return s >= SeverityInfo && s <= SeverityError
}

// Clamp caps s at max. Severities at or below max are returned unchanged.
// An unset max (the zero value) leaves s unchanged.
func (s Severity) Clamp(max Severity) Severity {
	if max != 0 && s > max {
		return max
	}
	return s
}

// OrDefault returns s, or def when s is the zero value.
func (s Severity) OrDefault(def Severity) Severity {
	if s == 0 {
		return def
	}
	return s
}

// Parse converts a case-insensitive level name into a Severity.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q (valid: info, warning, error)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("severity: cannot marshal invalid level %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
