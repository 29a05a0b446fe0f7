package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/apiverify"
	"github.com/erraggy/apiverify/cmd/apiverify/commands"
)

var commandNames = []string{"verify", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apiverify v%s\n", apiverify.Version())
		if len(os.Args) > 2 && os.Args[2] == "--full" {
			fmt.Println(apiverify.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "verify":
		err = commands.HandleVerify(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrIncompatible) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`apiverify - API contract verification

Usage:
  apiverify <command> [options]

Commands:
  verify      Check that a target API tree satisfies a reference tree
  mcp         Serve the verify tool over the Model Context Protocol
  version     Show version information (--full for build details)
  help        Show this help message

Examples:
  apiverify verify contract.yaml service.yaml
  apiverify verify --bidirectional published.yaml openapi.yaml
  apiverify verify --policy policy.toml --format json contract.yaml service.yaml

Run 'apiverify <command> --help' for more information on a command.`)
}
