package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/apiverify"
	"github.com/erraggy/apiverify/internal/cliutil"
	"github.com/erraggy/apiverify/internal/treeio"
	"github.com/erraggy/apiverify/verifier"
)

// VerifyFlags contains flags for the verify command
type VerifyFlags struct {
	Format        string
	MaxSeverity   string
	Location      string
	Strict        bool
	Bidirectional bool
	Policy        string
	Checkers      string
	Verbose       bool
}

// SetupVerifyFlags creates and configures a FlagSet for the verify command.
// Returns the FlagSet and a VerifyFlags struct with bound flag variables.
func SetupVerifyFlags() (*flag.FlagSet, *VerifyFlags) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	flags := &VerifyFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.MaxSeverity, "max-severity", "", "cap issue severity: info, warning, or error")
	fs.StringVar(&flags.Location, "location", "", "attribute issues to: implementation or contract")
	fs.BoolVar(&flags.Strict, "strict", false, "also report resources and actions the reference does not declare")
	fs.BoolVar(&flags.Bidirectional, "bidirectional", false, "verify in both directions (reference is the published contract)")
	fs.BoolVar(&flags.Bidirectional, "b", false, "verify in both directions (reference is the published contract)")
	fs.StringVar(&flags.Policy, "policy", "", "policy file (.yaml, .yml, .json, or .toml)")
	fs.StringVar(&flags.Checkers, "checkers", "", "comma-separated checkers to run (default: all)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log comparison progress to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "log comparison progress to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiverify verify [flags] <reference> <target>\n\n")
		cliutil.Writef(fs.Output(), "Check that a target API tree satisfies a reference API tree.\n")
		cliutil.Writef(fs.Output(), "Both inputs may be tree documents or OpenAPI 3.x documents.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nCheckers:\n")
		for _, name := range verifier.CheckerNames() {
			cliutil.Writef(fs.Output(), "  %s\n", name)
		}
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable report grouped by issue kind\n")
		cliutil.Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apiverify verify contract.yaml service.yaml\n")
		cliutil.Writef(fs.Output(), "  apiverify verify --strict --checkers content-type,response-codes contract.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  apiverify verify -b --policy policy.toml published.yaml implemented.yaml\n")
		cliutil.Writef(fs.Output(), "  apiverify verify --format json contract.yaml service.yaml | jq '.errors'\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    Target is compatible (no error-level issues)\n")
		cliutil.Writef(fs.Output(), "  1    Target is incompatible, or the command failed\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Flags override the matching policy settings\n")
		cliutil.Writef(fs.Output(), "  - --location and --strict are ignored with --bidirectional\n")
	}

	return fs, flags
}

// HandleVerify executes the verify command
func HandleVerify(args []string) error {
	fs, flags := SetupVerifyFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("verify command requires exactly two file paths")
	}

	referencePath := fs.Arg(0)
	targetPath := fs.Arg(1)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	policy, err := flags.policy()
	if err != nil {
		return err
	}
	logger := NewLogger(flags.Verbose)

	startTime := time.Now()
	var report *verifier.Report
	if flags.Bidirectional {
		report, err = verifyBothWays(policy, referencePath, targetPath, logger)
	} else {
		report, err = verifyOneWay(policy, referencePath, targetPath, logger)
	}
	totalTime := time.Since(startTime)
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	} else {
		renderText(os.Stdout, report, textHeader{
			Reference:     referencePath,
			Target:        targetPath,
			Bidirectional: flags.Bidirectional,
			Elapsed:       totalTime,
		})
	}

	if !report.Compatible() {
		return ErrIncompatible
	}
	return nil
}

// policy loads the policy file, if any, and overlays the explicit flags.
func (f *VerifyFlags) policy() (*verifier.Policy, error) {
	policy := &verifier.Policy{}
	if f.Policy != "" {
		loaded, err := verifier.LoadPolicy(f.Policy)
		if err != nil {
			return nil, fmt.Errorf("loading policy: %w", err)
		}
		policy = loaded
	}
	if f.MaxSeverity != "" {
		policy.MaxSeverity = f.MaxSeverity
	}
	if f.Location != "" {
		policy.Location = f.Location
	}
	if f.Strict {
		policy.Strict = true
	}
	if f.Checkers != "" {
		policy.Checkers = SplitList(f.Checkers)
	}
	return policy, nil
}

func verifyOneWay(policy *verifier.Policy, referencePath, targetPath string, logger verifier.Logger) (*verifier.Report, error) {
	opts, err := policy.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		verifier.WithReferenceFilePath(referencePath),
		verifier.WithTargetFilePath(targetPath),
		verifier.WithTreeLoader(treeio.Load),
		verifier.WithLogger(logger),
	)
	return verifier.CompareWithOptions(opts...)
}

func verifyBothWays(policy *verifier.Policy, publishedPath, implementedPath string, logger verifier.Logger) (*verifier.Report, error) {
	v, err := policy.Verifier()
	if err != nil {
		return nil, err
	}
	v.Logger = logger

	published, err := treeio.Load(publishedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference: %w", err)
	}
	implemented, err := treeio.Load(implementedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load target: %w", err)
	}
	return v.Verify(published, implemented)
}

type textHeader struct {
	Reference     string
	Target        string
	Bidirectional bool
	Elapsed       time.Duration
}

// renderText writes the human-readable report. Issues are grouped by kind,
// each group under a title-cased heading.
func renderText(w io.Writer, report *verifier.Report, h textHeader) {
	cliutil.Heading(w, "API Verification Report")
	cliutil.Writef(w, "\napiverify version: %s\n\n", apiverify.Version())

	refStats, tgtStats := report.ReferenceStats(), report.TargetStats()
	cliutil.Writef(w, "Reference: %s (%s, %s)\n", h.Reference,
		cliutil.Pluralize(refStats.Resources, "resource"), cliutil.Pluralize(refStats.Actions, "action"))
	cliutil.Writef(w, "Target:    %s (%s, %s)\n", h.Target,
		cliutil.Pluralize(tgtStats.Resources, "resource"), cliutil.Pluralize(tgtStats.Actions, "action"))
	if h.Bidirectional {
		cliutil.Writef(w, "Mode:      bidirectional\n")
	} else {
		cliutil.Writef(w, "Mode:      one-way\n")
	}
	if h.Elapsed > 0 {
		cliutil.Writef(w, "Total Time: %v\n", h.Elapsed)
	}
	cliutil.Writef(w, "\n")

	if report.Len() == 0 {
		cliutil.Writef(w, "✓ No issues found - target satisfies the reference\n")
		return
	}

	caser := cases.Title(language.English)
	groups := report.ByKind()
	for _, kind := range verifier.Kinds() {
		issues := groups[kind]
		if len(issues) == 0 {
			continue
		}
		cliutil.Writef(w, "%s (%d):\n", caser.String(string(kind)), len(issues))
		for _, issue := range issues {
			if h.Bidirectional {
				cliutil.Writef(w, "  %s (%s)\n", issue, issue.Location)
			} else {
				cliutil.Writef(w, "  %s\n", issue)
			}
		}
		cliutil.Writef(w, "\n")
	}

	cliutil.Writef(w, "Summary: %s\n", report.Summary())
	if report.InfoCount() > 0 {
		cliutil.Writef(w, "  including %s\n", cliutil.Pluralize(report.InfoCount(), "informational issue"))
	}
}
