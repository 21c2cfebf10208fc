// Package jsonref provides automatic resolution of JSON References ($ref)
// within JSON and YAML documents.
//
// A JSON Reference is an object of the form {"$ref": "<URI>"} whose value
// names another location, either inside the same document (via a JSON
// Pointer fragment such as "#/definitions/address") or inside a different
// document fetched from a file path or URL. jsonref walks a document,
// replaces every reference object with a lazily-resolving proxy, and keeps
// enough information to re-serialize the document with its original
// references intact.
//
// # Overview
//
// The library consists of five packages:
//
//   - resolver: Walk documents, replace references with lazy proxies, and
//     load/dump documents with references resolved
//   - pointer: Resolve JSON Pointer fragments (RFC 6901) against in-memory
//     document trees
//   - loader: Fetch and parse remote documents (HTTP, HTTPS, local files)
//     with normalized-URI caching
//   - proxytypes: Generic eager, callback, and lazy value proxies plus
//     proxy-transparent accessors and deep equality
//   - referrors: Structured error types for programmatic error handling
//
// Key properties:
//
//   - Lazy by default: a reference's target is fetched and resolved the
//     first time it is accessed, not when the document is walked
//   - Cycle-safe: mutually recursive references resolve to self-referential
//     live structures instead of looping forever
//   - Identity-preserving: two references to the same target share one
//     resolved object rather than holding independent copies
//   - Round-trip capable: serializing a resolved document re-emits the
//     original reference objects byte-for-byte
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/jsonref
//
// # Quick Start
//
// Resolve references inside a JSON document:
//
//	import "github.com/erraggy/jsonref/resolver"
//
//	doc, err := resolver.LoadString(`{"a": 1, "b": {"$ref": "#/a"}}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	b, err := proxytypes.Key(doc, "b")   // forces resolution of the reference
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(b) // 1
//
// Resolve a document fetched from a URL, following references into other
// documents relative to it:
//
//	doc, err := resolver.LoadURI("https://example.com/schemas/pet.json")
//
// Splice resolved values in place of the proxies when round-tripping is not
// needed:
//
//	doc, err := resolver.LoadString(data, resolver.WithProxies(false))
//
// # Command-Line Interface
//
// In addition to the library packages, jsonref provides a command-line
// interface:
//
//	# Fully dereference a document
//	jsonref resolve api.json
//
//	# Verify that every reference in a document resolves
//	jsonref check api.json
//
//	# Extract a value from the resolved document
//	jsonref get --path paths api.json
//
//	# Serve resolution tools over the Model Context Protocol
//	jsonref mcp
//
// Install the CLI:
//
//	go install github.com/erraggy/jsonref/cmd/jsonref@latest
//
// # Additional Resources
//
//   - GitHub Repository: https://github.com/erraggy/jsonref
//   - JSON Reference draft: https://datatracker.ietf.org/doc/html/draft-pbryan-zyp-json-ref-03
//   - JSON Pointer (RFC 6901): https://datatracker.ietf.org/doc/html/rfc6901
//   - Go Package Documentation: https://pkg.go.dev/github.com/erraggy/jsonref
package jsonref
