package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"

	"github.com/erraggy/jsonref/resolver"
)

type getInput struct {
	Doc docInput `json:"doc" jsonschema:"The document to extract from"`
	resolveSettings
	Path string `json:"path" jsonschema:"gjson path into the resolved document, e.g. definitions.address.type"`
}

type getOutput struct {
	Value string `json:"value"`
}

func handleGet(_ context.Context, _ *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, getOutput, error) {
	if input.Path == "" {
		return errResult(fmt.Errorf("path is required")), getOutput{}, nil
	}
	doc, err := input.Doc.load(input.resolveSettings, resolver.WithProxies(false))
	if err != nil {
		return errResult(err), getOutput{}, nil
	}
	data, err := resolver.Marshal(doc)
	if err != nil {
		return errResult(fmt.Errorf("serializing resolved document: %w", err)), getOutput{}, nil
	}
	value := gjson.GetBytes(data, input.Path)
	if !value.Exists() {
		return errResult(fmt.Errorf("path %q not found in resolved document", input.Path)), getOutput{}, nil
	}
	return nil, getOutput{Value: value.Raw}, nil
}
