// Package loader fetches and decodes JSON and YAML documents referenced
// by URI, with caching and request coalescing.
//
// Import path: github.com/erraggy/jsonref/loader
//
// A [Loader] retrieves documents from http:// and https:// URLs, file://
// URIs, and bare filesystem paths, decodes them as JSON or YAML based on
// extension, Content-Type, and content sniffing, and caches the decoded
// document keyed by normalized URI. Concurrent loads of the same URI are
// coalesced into a single fetch.
//
//	l, err := loader.New(
//	    loader.WithUserAgent("myapp/1.2.3"),
//	    loader.WithMaxDocumentSize(4<<20),
//	)
//	doc, err := l.Load("https://example.com/schemas/address.json")
//
// Documents decoded from JSON carry float64 numbers; documents decoded
// from YAML carry int and float64 numbers per YAML typing. Load failures
// return a [referrors.LoaderError] wrapping the transport or decode error.
//
// A zero-configuration loader from [New] backs reference resolution when
// no custom loader is supplied; each resolution gets its own instance, so
// there is no package-level cache to invalidate.
package loader
