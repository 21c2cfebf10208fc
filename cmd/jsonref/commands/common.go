// Package commands provides CLI command handlers for jsonref.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/jsonref/resolver"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// CommonFlags contains the resolution flags shared by resolve, check, and get.
type CommonFlags struct {
	BaseURI    string
	JSONSchema bool
	MergeProps bool
	Quiet      bool
}

// RegisterCommonFlags binds the shared resolution flags onto fs.
func RegisterCommonFlags(fs *flag.FlagSet, flags *CommonFlags) {
	fs.StringVar(&flags.BaseURI, "base-uri", "", "base URI for resolving relative references (defaults to the document's own path or URL)")
	fs.BoolVar(&flags.JSONSchema, "jsonschema", false, "JSON Schema mode: $id keywords change the base URI for references inside them")
	fs.BoolVar(&flags.MergeProps, "merge-props", false, "merge extra keys on reference objects into the resolved target")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages")
}

// ResolverOptions converts the shared flags to resolver options.
func (c *CommonFlags) ResolverOptions() []resolver.Option {
	var opts []resolver.Option
	if c.BaseURI != "" {
		opts = append(opts, resolver.WithBaseURI(c.BaseURI))
	}
	if c.JSONSchema {
		opts = append(opts, resolver.WithJSONSchemaMode(true))
	}
	if c.MergeProps {
		opts = append(opts, resolver.WithMergeProps(true))
	}
	return opts
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatJSON, FormatYAML)
	}
	return nil
}

// LoadDocument loads a document from a file path, URL, or stdin ("-"),
// applying the shared resolution flags plus any extra resolver options.
func LoadDocument(docPath string, flags *CommonFlags, extra ...resolver.Option) (any, error) {
	opts := append(flags.ResolverOptions(), extra...)
	switch {
	case docPath == StdinFilePath:
		opts = append(opts, resolver.WithReader(os.Stdin))
	case strings.HasPrefix(docPath, "http://"), strings.HasPrefix(docPath, "https://"):
		opts = append(opts, resolver.WithURL(docPath))
	default:
		opts = append(opts, resolver.WithFile(docPath))
	}
	return resolver.LoadWithOptions(opts...)
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// FormatDocPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatDocPath(docPath string) string {
	if docPath == StdinFilePath {
		return "<stdin>"
	}
	return docPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
