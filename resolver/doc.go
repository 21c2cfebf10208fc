// Package resolver replaces JSON reference objects within a document by
// lazy proxies to the data they point to.
//
// Import path: github.com/erraggy/jsonref/resolver
//
// A reference object is a map carrying a string-valued "$ref" key, such
// as {"$ref": "#/definitions/address"} or {"$ref": "other.json#/x"}.
// [ReplaceRefs] walks a decoded document and substitutes each reference
// object with a [Ref], a proxy that resolves the reference on first
// access: local fragments resolve against the document being walked,
// remote URIs are fetched through a pluggable loader, and chained or
// mutually recursive references resolve by re-entering the same walk.
// Two references to one target share one resolved object, so cycles
// become self-referential live structure rather than infinite trees.
//
// # Quick Start
//
// Load a JSON document and access a resolved reference:
//
//	doc, err := resolver.LoadString(`{"a": 1, "b": {"$ref": "#/a"}}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	b, err := proxytypes.Key(doc, "b") // forces the reference
//	fmt.Println(b)                     // 1
//
// Resolve against other documents, supplied by any loader function:
//
//	docs := map[string]any{"other.json": map[string]any{"x": 1.0}}
//	doc, err := resolver.LoadString(data, resolver.WithLoader(
//		func(uri string) (any, error) { return docs[uri], nil },
//	))
//
// Splice referent data in place of proxies when round-tripping to the
// original references is not needed:
//
//	doc, err := resolver.LoadString(data, resolver.WithProxies(false))
//
// # Laziness and errors
//
// By default a reference resolves when first accessed; a broken
// reference surfaces a [referrors.ReferenceError] only to code that
// touches it. [WithLazyLoad](false) forces every reference during the
// load and fails fast instead.
//
// # Serialization
//
// [Marshal] and [Dump] serialize a resolved document back to JSON with
// every Ref emitted as its original reference object, so load followed
// by dump reproduces the referenced form.
package resolver
