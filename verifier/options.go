package verifier

import (
	"fmt"

	"github.com/erraggy/apiverify/apierrors"
	"github.com/erraggy/apiverify/contract"
	"github.com/erraggy/apiverify/internal/options"
)

// Option is a function that configures a comparison.
type Option func(*compareConfig) error

// TreeLoader reads a contract tree from a file path.
type TreeLoader func(path string) (*contract.API, error)

// compareConfig holds configuration for a comparison.
type compareConfig struct {
	// Input sources (exactly one reference and one target must be set)
	referenceFilePath *string
	reference         *contract.API
	targetFilePath    *string
	target            *contract.API

	loader      TreeLoader
	checkers    []Checker
	location    Location
	maxSeverity Severity
	strict      bool
	logger      Logger
}

// CompareWithOptions compares two contract trees using functional options.
//
// Example:
//
//	report, err := verifier.CompareWithOptions(
//	    verifier.WithReferenceFilePath("contract.yaml"),
//	    verifier.WithTargetFilePath("implementation.yaml"),
//	    verifier.WithCheckers(verifier.DefaultCheckers()...),
//	)
func CompareWithOptions(opts ...Option) (*Report, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("verifier: invalid options: %w", err)
	}

	reference := cfg.reference
	if cfg.referenceFilePath != nil {
		reference, err = cfg.loader(*cfg.referenceFilePath)
		if err != nil {
			return nil, fmt.Errorf("verifier: failed to load reference: %w", err)
		}
	}

	target := cfg.target
	if cfg.targetFilePath != nil {
		target, err = cfg.loader(*cfg.targetFilePath)
		if err != nil {
			return nil, fmt.Errorf("verifier: failed to load target: %w", err)
		}
	}

	c := &Coordinator{
		Checkers:    cfg.checkers,
		Location:    cfg.location,
		MaxSeverity: cfg.maxSeverity,
		Strict:      cfg.strict,
		Logger:      cfg.logger,
	}
	return c.Compare(reference, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*compareConfig, error) {
	cfg := &compareConfig{
		loader:      contract.LoadFile,
		location:    LocationImplementation,
		maxSeverity: SeverityError,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := exactlyOne("reference", "WithReferenceFilePath or WithReference", cfg.referenceFilePath != nil, cfg.reference != nil); err != nil {
		return nil, err
	}
	if err := exactlyOne("target", "WithTargetFilePath or WithTarget", cfg.targetFilePath != nil, cfg.target != nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func exactlyOne(option, hint string, filePath, tree bool) error {
	err := options.ValidateSingleInputSource(
		"must specify a "+option+" (use "+hint+")",
		"must specify exactly one "+option,
		filePath, tree,
	)
	if err != nil {
		return &apierrors.ConfigError{Option: option, Message: err.Error()}
	}
	return nil
}

// WithReference specifies an in-memory reference tree
func WithReference(api *contract.API) Option {
	return func(cfg *compareConfig) error {
		if api == nil {
			return &apierrors.ConfigError{Option: "reference", Message: "tree must not be nil"}
		}
		cfg.reference = api
		return nil
	}
}

// WithReferenceFilePath specifies a file to load the reference tree from
func WithReferenceFilePath(path string) Option {
	return func(cfg *compareConfig) error {
		cfg.referenceFilePath = &path
		return nil
	}
}

// WithTarget specifies an in-memory target tree
func WithTarget(api *contract.API) Option {
	return func(cfg *compareConfig) error {
		if api == nil {
			return &apierrors.ConfigError{Option: "target", Message: "tree must not be nil"}
		}
		cfg.target = api
		return nil
	}
}

// WithTargetFilePath specifies a file to load the target tree from
func WithTargetFilePath(path string) Option {
	return func(cfg *compareConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTreeLoader sets the function used by the FilePath options to read trees.
// Default: contract.LoadFile
func WithTreeLoader(loader TreeLoader) Option {
	return func(cfg *compareConfig) error {
		if loader == nil {
			return &apierrors.ConfigError{Option: "loader", Message: "loader must not be nil"}
		}
		cfg.loader = loader
		return nil
	}
}

// WithCheckers appends checkers to run on every matched action pair
func WithCheckers(checkers ...Checker) Option {
	return func(cfg *compareConfig) error {
		cfg.checkers = append(cfg.checkers, checkers...)
		return nil
	}
}

// WithLocation sets the side issues are attributed to
// Default: LocationImplementation
func WithLocation(loc Location) Option {
	return func(cfg *compareConfig) error {
		if loc != LocationImplementation && loc != LocationContract {
			return &apierrors.ConfigError{Option: "location", Value: int(loc), Message: "unknown location"}
		}
		cfg.location = loc
		return nil
	}
}

// WithMaxSeverity caps the severity of reported issues
// Default: SeverityError
func WithMaxSeverity(max Severity) Option {
	return func(cfg *compareConfig) error {
		if !max.IsValid() {
			return &apierrors.ConfigError{Option: "max_severity", Value: int(max), Message: "unknown severity"}
		}
		cfg.maxSeverity = max
		return nil
	}
}

// WithStrict enables reporting of target-only resources and actions
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *compareConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithLogger sets the logger for the comparison
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *compareConfig) error {
		cfg.logger = l
		return nil
	}
}
