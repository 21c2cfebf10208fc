package loader

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// format represents the decoded wire format of a document
type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

// detectFormat determines the document format from the URI path extension,
// the Content-Type header, and finally the content itself.
func detectFormat(uri, contentType string, data []byte) format {
	if f, ok := formatFromPath(uri); ok {
		return f
	}
	if f, ok := formatFromContentType(contentType); ok {
		return f
	}
	return formatFromContent(data)
}

// formatFromPath detects the format from a path or URL extension
func formatFromPath(uri string) (format, bool) {
	path := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		path = u.Path
	}
	switch filepath.Ext(path) {
	case ".json":
		return formatJSON, true
	case ".yaml", ".yml":
		return formatYAML, true
	default:
		return "", false
	}
}

// formatFromContentType detects the format from a Content-Type header
func formatFromContentType(contentType string) (format, bool) {
	if contentType == "" {
		return "", false
	}
	contentType = strings.ToLower(contentType)
	// Remove charset and other parameters
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	switch contentType {
	case "application/json", "application/schema+json", "application/schema-instance+json":
		return formatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return formatYAML, true
	default:
		return "", false
	}
}

// formatFromContent detects the format from the content bytes.
// JSON documents start with '{' or '['; anything else is treated as YAML,
// which also accepts scalar and flow-style JSON bodies.
func formatFromContent(data []byte) format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return formatJSON
	}
	return formatYAML
}

// decode unmarshals data into a generic document tree. JSON input decodes
// with encoding/json so numbers arrive as float64; YAML input decodes with
// the YAML type mapping, so integers arrive as int.
func decode(data []byte, f format) (any, error) {
	var doc any
	switch f {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
