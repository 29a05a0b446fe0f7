package apierrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/contract.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/contract.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrConfig) || errors.Is(err, ErrCyclicTree) {
			t.Error("ParseError should not match other sentinels")
		}
	})

	t.Run("As extracts ParseError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ParseError{Path: "test.yaml", Line: 5})
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatal("errors.As should succeed")
		}
		if parseErr.Line != 5 {
			t.Errorf("unexpected line: %d", parseErr.Line)
		}
	})
}

func TestCycleError(t *testing.T) {
	tests := []struct {
		name     string
		err      *CycleError
		expected string
	}{
		{"bare", &CycleError{}, "cyclic resource tree"},
		{"with tree", &CycleError{Tree: "target"}, "target cyclic resource tree"},
		{
			"with tree and path",
			&CycleError{Tree: "reference", Path: "/orders/{id}"},
			"reference cyclic resource tree: resource /orders/{id} is its own ancestor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}

	t.Run("Is matches ErrCyclicTree through wrapping", func(t *testing.T) {
		err := fmt.Errorf("verifier: %w", &CycleError{Path: "/a"})
		if !errors.Is(err, ErrCyclicTree) {
			t.Error("wrapped CycleError should match ErrCyclicTree")
		}
		if errors.Is(err, ErrParse) {
			t.Error("CycleError should not match ErrParse")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{
			Option:  "max_severity",
			Value:   "fatal",
			Message: "unknown level",
			Cause:   errors.New("boom"),
		}
		expected := "configuration error for max_severity (value: fatal): unknown level: boom"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})

	t.Run("Unwrap returns nil when no cause", func(t *testing.T) {
		err := &ConfigError{}
		if err.Unwrap() != nil {
			t.Error("Unwrap should return nil when no cause")
		}
	})
}
