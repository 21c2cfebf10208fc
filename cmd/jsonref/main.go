// Command jsonref resolves JSON References ($ref) in JSON and YAML
// documents from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/cmd/jsonref/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("jsonref v%s\n", jsonref.Version())
	case "help", "-h", "--help":
		printUsage()
	case "resolve":
		if err := commands.HandleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := commands.HandleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "get":
		if err := commands.HandleGet(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `jsonref - resolve JSON References ($ref) in JSON and YAML documents

Usage: jsonref <command> [flags] [args]

Commands:
  resolve    Fully dereference a document and print the result
  check      Verify that every reference in a document resolves
  get        Extract a value from the resolved document by path
  mcp        Serve resolution tools over the Model Context Protocol (stdio)
  version    Print version information
  help       Show this help message

Run 'jsonref <command> --help' for command-specific flags.

Examples:
  jsonref resolve api.json
  jsonref resolve --format yaml https://example.com/schema.json
  jsonref check --jsonschema schema.json
  jsonref get --path definitions.address.type api.json
  cat api.json | jsonref resolve -
`)
}
