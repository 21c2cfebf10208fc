package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/jsonref/resolver"
)

type checkInput struct {
	Doc docInput `json:"doc" jsonschema:"The document to check"`
	resolveSettings
}

type checkRef struct {
	URI   string `json:"uri"`
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type checkOutput struct {
	Total  int        `json:"total"`
	Failed int        `json:"failed"`
	OK     bool       `json:"ok"`
	Refs   []checkRef `json:"refs,omitempty"`
}

func handleCheck(_ context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	doc, err := input.Doc.load(input.resolveSettings)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	var output checkOutput
	err = resolver.WalkRefs(doc, func(r *resolver.Ref) error {
		status := checkRef{
			URI:  r.FullURI(),
			Path: formatPath(r.Path()),
			OK:   true,
		}
		if _, err := r.Subject(); err != nil {
			status.OK = false
			status.Error = sanitizeError(err)
			output.Failed++
		}
		output.Total++
		output.Refs = append(output.Refs, status)
		return nil
	})
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}
	output.OK = output.Failed == 0
	return nil, output, nil
}
