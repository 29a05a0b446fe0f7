package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/apiverify/internal/cliutil"
	"github.com/erraggy/apiverify/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The command takes no
// flags; configuration comes from APIVERIFY_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apiverify mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the verify tool over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_MAX_SEVERITY     default severity cap (info, warning, error)\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_STRICT           report undeclared resources by default (true/false)\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_POLICY           policy file applied to every call\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_MAX_INLINE_SIZE  maximum inline document size in bytes\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_MAX_ISSUES       default issue page size\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_MAX_LIMIT        largest issue page a client may request\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_CACHE_ENABLED    cache decoded trees between calls (true/false)\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_CACHE_MAX_SIZE   maximum cached trees\n")
		cliutil.Writef(fs.Output(), "  APIVERIFY_CACHE_TTL        cache entry lifetime (e.g. 10m)\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
