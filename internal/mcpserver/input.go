package mcpserver

import (
	"strconv"
	"strings"

	"github.com/erraggy/jsonref/resolver"
)

// docInput represents the three ways a document can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON document content"`
}

// resolveSettings are the resolution options shared by every tool.
type resolveSettings struct {
	BaseURI    string `json:"base_uri,omitempty"    jsonschema:"Base URI to resolve relative references against; defaults to the document's own file path or URL"`
	JSONSchema bool   `json:"jsonschema,omitempty"  jsonschema:"JSON Schema mode: $id keywords change the base URI for references inside them"`
	MergeProps bool   `json:"merge_props,omitempty" jsonschema:"Merge extra keys on reference objects into the resolved target"`
}

// load loads the document from whichever input was provided, applying
// the shared settings plus any extra options. Input-source validation
// (exactly one of file, url, content) happens inside the resolver.
func (d docInput) load(settings resolveSettings, extra ...resolver.Option) (any, error) {
	opts := make([]resolver.Option, 0, len(extra)+4)
	if d.File != "" {
		opts = append(opts, resolver.WithFile(d.File))
	}
	if d.URL != "" {
		opts = append(opts, resolver.WithURL(d.URL))
	}
	if d.Content != "" {
		opts = append(opts, resolver.WithContent([]byte(d.Content)))
	}
	if settings.BaseURI != "" {
		opts = append(opts, resolver.WithBaseURI(settings.BaseURI))
	}
	if settings.JSONSchema {
		opts = append(opts, resolver.WithJSONSchemaMode(true))
	}
	if settings.MergeProps {
		opts = append(opts, resolver.WithMergeProps(true))
	}
	opts = append(opts, extra...)
	return resolver.LoadWithOptions(opts...)
}

// formatPath renders a reference's document location as a JSON Pointer.
func formatPath(path []any) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	for _, elem := range path {
		b.WriteByte('/')
		switch e := elem.(type) {
		case string:
			e = strings.ReplaceAll(e, "~", "~0")
			e = strings.ReplaceAll(e, "/", "~1")
			b.WriteString(e)
		case int:
			b.WriteString(strconv.Itoa(e))
		}
	}
	return b.String()
}
