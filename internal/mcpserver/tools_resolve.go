package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/jsonref/resolver"
)

type resolveInput struct {
	Doc docInput `json:"doc" jsonschema:"The document to resolve"`
	resolveSettings
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

type resolveOutput struct {
	Document string `json:"document"`
	Format   string `json:"format"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q: use json or yaml", input.Format)), resolveOutput{}, nil
	}

	doc, err := input.Doc.load(input.resolveSettings, resolver.WithProxies(false))
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	var data []byte
	if format == "yaml" {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = resolver.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return errResult(fmt.Errorf("serializing resolved document: %w", err)), resolveOutput{}, nil
	}
	return nil, resolveOutput{Document: string(data), Format: format}, nil
}
