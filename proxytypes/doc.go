// Package proxytypes provides generic value proxies: objects that stand in
// for an eventually-available value and defer its computation until first
// use.
//
// Import path: github.com/erraggy/jsonref/proxytypes
//
// Three flavors implement the [Proxy] interface:
//
//   - [ValueProxy]: wraps a value that is already available
//   - [CallbackProxy]: re-invokes its callback on every access, never caching
//   - [LazyProxy]: invokes its callback once on first access, then caches
//     the result; a failed callback is retried on the next access
//
// Go has no operator interception, so transparency is expressed through
// accessor functions rather than overloaded operators. The package-level
// helpers ([Resolve], [Key], [Index], [Len], [Map], [Array], [Bool],
// [Int64], [Float64], [String], [SetKey], [SetIndex], [DeleteKey]) accept
// any value and force proxies as needed, so code that manipulates document
// trees does not have to care whether a node is a plain value or a proxy:
//
//	doc := map[string]any{
//		"a": 5,
//		"b": proxytypes.NewLazy(expensiveLookup),
//	}
//	b, err := proxytypes.Key(doc, "b") // returns the proxy untouched
//	n, err := proxytypes.Int64(b)      // forces it and converts
//
// [Equal] provides proxy-transparent deep equality that normalizes numeric
// kinds (an int 5 equals a float64 5) and tolerates cyclic structures, so
// resolved self-referential documents can be compared without looping.
//
// Proxies are not goroutine-safe; callers that share a proxy across
// goroutines must provide their own synchronization.
package proxytypes
