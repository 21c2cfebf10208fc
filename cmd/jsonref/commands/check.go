package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/resolver"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	CommonFlags
	Format string
}

// CheckResult holds the outcome of checking every reference in a document.
type CheckResult struct {
	Document string           `json:"document" yaml:"document"`
	Total    int              `json:"total" yaml:"total"`
	OK       int              `json:"ok" yaml:"ok"`
	Failed   int              `json:"failed" yaml:"failed"`
	Refs     []CheckRefResult `json:"refs" yaml:"refs"`
}

// CheckRefResult describes a single reference and whether it resolved.
type CheckRefResult struct {
	URI   string `json:"uri" yaml:"uri"`
	Path  string `json:"path" yaml:"path"`
	OK    bool   `json:"ok" yaml:"ok"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	RegisterCommonFlags(fs, &flags.CommonFlags)
	fs.StringVar(&flags.Format, "format", "", "structured output format: json or yaml (default: human-readable text)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: jsonref check [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Check that every JSON reference in a document resolves, without printing the expanded result.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  jsonref check schema.json\n")
		Writef(fs.Output(), "  jsonref check --jsonschema https://example.com/schema.json\n")
		Writef(fs.Output(), "  jsonref check --format json schema.json | jq '.failed'\n")
		Writef(fs.Output(), "  cat schema.json | jsonref check -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All references resolved\n")
		Writef(fs.Output(), "  1    One or more references failed to resolve\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one file path, URL, or '-' for stdin")
	}

	docPath := fs.Arg(0)

	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format); err != nil {
			return err
		}
	}

	startTime := time.Now()
	doc, err := LoadDocument(docPath, &flags.CommonFlags)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	result := CheckResult{Document: FormatDocPath(docPath)}
	walkErr := resolver.WalkRefs(doc, func(r *resolver.Ref) error {
		ref := CheckRefResult{
			URI:  r.FullURI(),
			Path: FormatRefPath(r.Path()),
		}
		if _, err := r.Subject(); err != nil {
			ref.Error = err.Error()
		} else {
			ref.OK = true
		}
		result.Refs = append(result.Refs, ref)
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walking references: %w", walkErr)
	}

	result.Total = len(result.Refs)
	for _, ref := range result.Refs {
		if ref.OK {
			result.OK++
		} else {
			result.Failed++
		}
	}

	if flags.Format != "" {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
		if result.Failed > 0 {
			os.Exit(1)
		}
		return nil
	}

	// Text format output
	useColor := isatty.IsTerminal(os.Stdout.Fd())
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if !useColor {
		pass.DisableColor()
		fail.DisableColor()
	}

	if !flags.Quiet {
		Writef(os.Stderr, "jsonref version: %s\n", jsonref.Version())
		Writef(os.Stderr, "Document: %s\n", result.Document)
		Writef(os.Stderr, "References: %d\n", result.Total)
		Writef(os.Stderr, "Check Time: %v\n\n", time.Since(startTime))
	}

	for _, ref := range result.Refs {
		if ref.OK {
			Writef(os.Stdout, "%s  %s  %s\n", pass.Sprint("PASS"), ref.Path, ref.URI)
		} else {
			Writef(os.Stdout, "%s  %s  %s\n      %s\n", fail.Sprint("FAIL"), ref.Path, ref.URI, ref.Error)
		}
	}

	if result.Failed > 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "\n✗ %d of %d reference(s) failed to resolve\n", result.Failed, result.Total)
		}
		os.Exit(1)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "\n✓ All %d reference(s) resolved\n", result.Total)
	}
	return nil
}

// FormatRefPath renders a document path as a JSON Pointer string.
// An empty path renders as "/" meaning the document root.
func FormatRefPath(path []any) string {
	if len(path) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range path {
		b.WriteByte('/')
		s := fmt.Sprint(seg)
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString(s)
	}
	return b.String()
}
