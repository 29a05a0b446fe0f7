// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes apiverify contract verification as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apiverify"
)

const serverInstructions = `apiverify MCP server: checks that a target API tree satisfies a reference API tree.

Inputs may be tree documents (YAML/JSON resources keyed by path, verbs as keys) or OpenAPI 3.x documents; the format is detected automatically.

Configuration: defaults are configurable via APIVERIFY_* environment variables set in your MCP client config.
- APIVERIFY_MAX_SEVERITY: default severity cap (info, warning, error)
- APIVERIFY_STRICT (default: false): report resources and actions the reference does not declare
- APIVERIFY_POLICY: policy file (.yaml or .toml) applied to every verify call
- APIVERIFY_MAX_ISSUES (default: 200): default issue page size
- APIVERIFY_MAX_LIMIT (default: 1000): largest accepted page size
- APIVERIFY_MAX_INLINE_SIZE (default: 5242880): largest accepted inline document in bytes
- APIVERIFY_CACHE_ENABLED (default: true), APIVERIFY_CACHE_MAX_SIZE (default: 16), APIVERIFY_CACHE_TTL (default: 10m): decoded tree cache`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apiverify", Version: apiverify.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify",
		Description: "Check that a target API tree satisfies a reference API tree. Reports missing resources, actions, bodies, response codes, parameters, and schema properties, ranked by severity and deduplicated. The target is compatible when no error-level issue remains. Use bidirectional=true when the reference is a published contract and the target its implementation; issues are then attributed to either side. Use max_severity to cap severities and offset/limit to page through issues.",
	}, handleVerify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_checkers",
		Description: "List the built-in checkers that verify can run. Pass any subset of these names as the checkers argument of verify.",
	}, handleListCheckers)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.IssueLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.IssueLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute filesystem paths so they are not leaked to
// MCP clients in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
