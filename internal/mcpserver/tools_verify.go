package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apiverify/verifier"
)

type verifyInput struct {
	Reference     treeInput `json:"reference"               jsonschema:"The reference tree (the contract the target must satisfy)"`
	Target        treeInput `json:"target"                  jsonschema:"The target tree checked against the reference"`
	MaxSeverity   string    `json:"max_severity,omitempty"  jsonschema:"Cap issue severities: info, warning, or error"`
	Location      string    `json:"location,omitempty"      jsonschema:"Attribute issues to implementation (default) or contract. Ignored when bidirectional"`
	Strict        bool      `json:"strict,omitempty"        jsonschema:"Also report resources and actions the reference does not declare"`
	Bidirectional bool      `json:"bidirectional,omitempty" jsonschema:"Check both directions, treating the reference as the published contract"`
	Checkers      []string  `json:"checkers,omitempty"      jsonschema:"Checkers to run (default: all). See list_checkers"`
	Offset        int       `json:"offset,omitempty"        jsonschema:"Number of issues to skip"`
	Limit         int       `json:"limit,omitempty"         jsonschema:"Maximum number of issues to return"`
}

type verifyOutput struct {
	Compatible   bool                     `json:"compatible"`
	ErrorCount   int                      `json:"error_count"`
	// WarningCount excludes informational issues, counted in InfoCount.
	WarningCount int                      `json:"warning_count"`
	InfoCount    int                      `json:"info_count"`
	TotalIssues  int                      `json:"total_issues"`
	Returned     int                      `json:"returned"`
	Issues       []verifier.IssueDocument `json:"issues,omitempty"`
	Summary      string                   `json:"summary"`
}

func handleVerify(_ context.Context, _ *mcp.CallToolRequest, input verifyInput) (*mcp.CallToolResult, verifyOutput, error) {
	reference, err := input.Reference.resolve()
	if err != nil {
		return errResult(fmt.Errorf("reference: %w", err)), verifyOutput{}, nil
	}
	target, err := input.Target.resolve()
	if err != nil {
		return errResult(fmt.Errorf("target: %w", err)), verifyOutput{}, nil
	}

	policy, err := input.policy()
	if err != nil {
		return errResult(err), verifyOutput{}, nil
	}

	var report *verifier.Report
	if input.Bidirectional {
		v, verr := policy.Verifier()
		if verr != nil {
			return errResult(verr), verifyOutput{}, nil
		}
		report, err = v.Verify(reference, target)
	} else {
		opts, oerr := policy.Options()
		if oerr != nil {
			return errResult(oerr), verifyOutput{}, nil
		}
		opts = append(opts, verifier.WithReference(reference), verifier.WithTarget(target))
		report, err = verifier.CompareWithOptions(opts...)
	}
	if err != nil {
		return errResult(err), verifyOutput{}, nil
	}

	issues := report.Issues()
	page := paginate(issues, input.Offset, input.Limit)
	output := verifyOutput{
		Compatible:   report.Compatible(),
		ErrorCount:   report.ErrorCount(),
		WarningCount: report.WarningCount() - report.InfoCount(),
		InfoCount:    report.InfoCount(),
		TotalIssues:  len(issues),
		Returned:     len(page),
	}
	if len(page) > 0 {
		output.Issues = make([]verifier.IssueDocument, 0, len(page))
		for _, issue := range page {
			output.Issues = append(output.Issues, verifier.NewIssueDocument(issue))
		}
	}
	output.Summary = buildVerifySummary(output)

	return nil, output, nil
}

// policy starts from the APIVERIFY_POLICY file, then the APIVERIFY_* defaults,
// and applies the explicit arguments last.
func (in verifyInput) policy() (*verifier.Policy, error) {
	policy := &verifier.Policy{}
	if cfg.PolicyPath != "" {
		loaded, err := verifier.LoadPolicy(cfg.PolicyPath)
		if err != nil {
			return nil, fmt.Errorf("loading APIVERIFY_POLICY: %w", err)
		}
		policy = loaded
	}
	if policy.MaxSeverity == "" {
		policy.MaxSeverity = cfg.MaxSeverity
	}
	if cfg.Strict {
		policy.Strict = true
	}

	if in.MaxSeverity != "" {
		policy.MaxSeverity = in.MaxSeverity
	}
	if in.Location != "" {
		policy.Location = in.Location
	}
	if in.Strict {
		policy.Strict = true
	}
	if len(in.Checkers) > 0 {
		policy.Checkers = in.Checkers
	}
	return policy, nil
}

func buildVerifySummary(output verifyOutput) string {
	if output.TotalIssues == 0 {
		return "Compatible. No issues found."
	}

	var summary string
	if output.Compatible {
		summary = "Compatible. "
	} else {
		summary = "Incompatible. "
	}
	summary += formatCount(output.TotalIssues, "issue") + " found"
	if output.ErrorCount > 0 {
		summary += " (" + formatCount(output.ErrorCount, "error") + ")"
	}
	summary += "."
	if output.Returned < output.TotalIssues {
		summary += fmt.Sprintf(" Showing %d; use offset/limit to page.", output.Returned)
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

type listCheckersInput struct{}

type listCheckersOutput struct {
	Checkers []string `json:"checkers"`
}

func handleListCheckers(_ context.Context, _ *mcp.CallToolRequest, _ listCheckersInput) (*mcp.CallToolResult, listCheckersOutput, error) {
	return nil, listCheckersOutput{Checkers: verifier.CheckerNames()}, nil
}
