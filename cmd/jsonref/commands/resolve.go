package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/resolver"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	CommonFlags
	Format string
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	RegisterCommonFlags(fs, &flags.CommonFlags)
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jsonref resolve [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Resolve all JSON references in a document and print the expanded result.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  jsonref resolve schema.json\n")
		Writef(fs.Output(), "  jsonref resolve https://example.com/schema.json\n")
		Writef(fs.Output(), "  jsonref resolve --jsonschema --format yaml schema.json\n")
		Writef(fs.Output(), "  cat schema.json | jsonref resolve -q -\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Resolution successful\n")
		Writef(fs.Output(), "  1    Resolution failed\n")
	}

	return fs, flags
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file path, URL, or '-' for stdin")
	}

	docPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	startTime := time.Now()
	doc, err := LoadDocument(docPath, &flags.CommonFlags, resolver.WithProxies(false))
	if err != nil {
		return fmt.Errorf("resolving references: %w", err)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "jsonref version: %s\n", jsonref.Version())
		Writef(os.Stderr, "Document: %s\n", FormatDocPath(docPath))
		Writef(os.Stderr, "Resolve Time: %v\n\n", time.Since(startTime))
	}

	return OutputStructured(doc, flags.Format)
}
