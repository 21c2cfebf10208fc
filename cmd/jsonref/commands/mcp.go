package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/jsonref/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jsonref mcp\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio exposing jsonref tools.\n\n")
		Writef(fs.Output(), "Tools:\n")
		Writef(fs.Output(), "  resolve  Resolve all JSON references in a document and return the expanded result\n")
		Writef(fs.Output(), "  check    Report whether every reference in a document resolves\n")
		Writef(fs.Output(), "  get      Resolve a document and extract a value with a GJSON path expression\n")
		Writef(fs.Output(), "\nThe server communicates over stdin/stdout and runs until the client disconnects.\n")
	}

	return fs
}

// HandleMCP executes the mcp command, blocking until the client disconnects
// or the process receives an interrupt.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
