package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/erraggy/jsonref/resolver"
)

// GetFlags contains flags for the get command
type GetFlags struct {
	CommonFlags
	Path string
	Raw  bool
}

// SetupGetFlags creates and configures a FlagSet for the get command.
// Returns the FlagSet and a GetFlags struct with bound flag variables.
func SetupGetFlags() (*flag.FlagSet, *GetFlags) {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	flags := &GetFlags{}

	RegisterCommonFlags(fs, &flags.CommonFlags)
	fs.StringVar(&flags.Path, "path", "", "GJSON path expression selecting the value to print (required)")
	fs.BoolVar(&flags.Raw, "raw", false, "print string values without surrounding quotes")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jsonref get --path <expr> [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Resolve all references in a document, then extract a value with a GJSON path expression.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  jsonref get --path definitions.address.type schema.json\n")
		Writef(fs.Output(), "  jsonref get --path 'items.0.name' --raw https://example.com/data.json\n")
		Writef(fs.Output(), "  cat schema.json | jsonref get --path properties -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Value found\n")
		Writef(fs.Output(), "  1    Resolution failed or path not found\n")
	}

	return fs, flags
}

// HandleGet executes the get command
func HandleGet(args []string) error {
	fs, flags := SetupGetFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("get command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.Path == "" {
		fs.Usage()
		return fmt.Errorf("get command requires --path")
	}

	docPath := fs.Arg(0)

	doc, err := LoadDocument(docPath, &flags.CommonFlags, resolver.WithProxies(false))
	if err != nil {
		return fmt.Errorf("resolving references: %w", err)
	}

	data, err := resolver.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	value := gjson.GetBytes(data, flags.Path)
	if !value.Exists() {
		return fmt.Errorf("path %q not found in document", flags.Path)
	}

	if flags.Raw && value.Type == gjson.String {
		Writef(os.Stdout, "%s\n", value.String())
	} else {
		Writef(os.Stdout, "%s\n", value.Raw)
	}
	return nil
}
