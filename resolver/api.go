package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/erraggy/jsonref/internal/options"
)

// Load decodes a JSON document from r and replaces its references,
// behaving as a drop-in replacement for json.Decoder that additionally
// resolves references as [ReplaceRefs] describes.
func Load(r io.Reader, opts ...Option) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resolver: reading document: %w", err)
	}
	return LoadBytes(data, opts...)
}

// LoadBytes decodes a JSON document from data and replaces its
// references.
func LoadBytes(data []byte, opts ...Option) (any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return loadBytes(data, cfg)
}

// LoadString decodes a JSON document from s and replaces its references.
func LoadString(s string, opts ...Option) (any, error) {
	return LoadBytes([]byte(s), opts...)
}

// LoadFile loads the document at path through the configured loader
// (which also decodes YAML files) and replaces its references. Unless
// [WithBaseURI] is given, relative references resolve against path.
func LoadFile(path string, opts ...Option) (any, error) {
	return LoadURI(path, opts...)
}

// LoadURI fetches the document at uri through the configured loader and
// replaces its references. Unless [WithBaseURI] is given, relative
// references resolve against uri, so companion documents load from
// sibling locations.
func LoadURI(uri string, opts ...Option) (any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return loadURI(uri, cfg)
}

// LoadWithOptions loads a document from exactly one configured input
// source ([WithFile], [WithURL], [WithReader], or [WithContent]) and
// replaces its references. Zero or multiple sources is an error.
func LoadWithOptions(opts ...Option) (any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := options.ExactlyOne(
		options.Source{Name: "WithFile", Set: cfg.inputFile != ""},
		options.Source{Name: "WithURL", Set: cfg.inputURL != ""},
		options.Source{Name: "WithReader", Set: cfg.inputReader != nil},
		options.Source{Name: "WithContent", Set: cfg.inputContent != nil},
	); err != nil {
		return nil, err
	}
	switch {
	case cfg.inputFile != "":
		return loadURI(cfg.inputFile, cfg)
	case cfg.inputURL != "":
		return loadURI(cfg.inputURL, cfg)
	case cfg.inputReader != nil:
		data, err := io.ReadAll(cfg.inputReader)
		if err != nil {
			return nil, fmt.Errorf("resolver: reading document: %w", err)
		}
		return loadBytes(data, cfg)
	default:
		return loadBytes(cfg.inputContent, cfg)
	}
}

// loadBytes decodes JSON and resolves with an already-built config.
func loadBytes(data []byte, cfg *config) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("resolver: decoding document: %w", err)
	}
	return replaceWithConfig(value, cfg)
}

// loadURI fetches through the config's loader and resolves, defaulting
// the base URI to the document's own URI.
func loadURI(uri string, cfg *config) (any, error) {
	doc, err := cfg.loader(uri)
	if err != nil {
		return nil, err
	}
	if !cfg.baseURISet {
		cfg.baseURI = uri
	}
	return replaceWithConfig(doc, cfg)
}

// WithFile sets a file path as the input source for [LoadWithOptions].
func WithFile(path string) Option {
	return func(cfg *config) error {
		cfg.inputFile = path
		return nil
	}
}

// WithURL sets a URL as the input source for [LoadWithOptions].
func WithURL(url string) Option {
	return func(cfg *config) error {
		cfg.inputURL = url
		return nil
	}
}

// WithReader sets an io.Reader as the input source for
// [LoadWithOptions]. The reader's content must be JSON.
func WithReader(r io.Reader) Option {
	return func(cfg *config) error {
		cfg.inputReader = r
		return nil
	}
}

// WithContent sets inline JSON content as the input source for
// [LoadWithOptions].
func WithContent(content []byte) Option {
	return func(cfg *config) error {
		cfg.inputContent = content
		return nil
	}
}

// Marshal serializes v to JSON. Any [Ref] within v is serialized as its
// original reference object, so a document loaded by this package
// round-trips to its referenced form. Values produced with
// [WithProxies](false) have no Refs left and serialize as plain,
// dereferenced data.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent is like [Marshal] with indented output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(v, prefix, indent)
}

// Dump writes the [Marshal] serialization of v to w.
func Dump(w io.Writer, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("resolver: writing document: %w", err)
	}
	return nil
}
