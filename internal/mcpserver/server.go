// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes jsonref capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/jsonref"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jsonref MCP server — resolves JSON References ($ref) in JSON and YAML documents.

Tools:
- resolve: fully dereference a document and return it with every $ref replaced by its target data
- check: force every reference in a document and report per-reference status (URI, location, error)
- get: extract a value from the fully resolved document by gjson path (e.g. "definitions.address.type")

Documents are provided per call as exactly one of file, url, or content. References into other
documents are fetched over http(s) or read from disk relative to the document's base URI; set
base_uri to control how relative references resolve. Nothing is cached between calls.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "jsonref", Version: jsonref.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Fully dereference a JSON or YAML document: every JSON Reference ({\"$ref\": ...}) is replaced by the data it points to, following references into other files and URLs. Returns the dereferenced document as JSON (default) or YAML. Fails on documents whose references form a cycle, since those cannot be serialized flat; use check to inspect them instead.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Force every JSON Reference in a document and report per-reference status: the target URI, the reference's location in the document, and the resolution error if any. Use this to audit a document's references before shipping it, or to diagnose a document that resolve rejects.",
	}, handleCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get",
		Description: "Extract a value from the fully resolved document by gjson path, e.g. \"definitions.address.type\" or \"items.0.name\". References are dereferenced before extraction, so paths can cross $ref boundaries transparently.",
	}, handleGet)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
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
