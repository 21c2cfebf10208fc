// Package pointer resolves JSON Pointer fragments (RFC 6901) against
// in-memory document trees of maps, sequences, and scalars.
//
// Import path: github.com/erraggy/jsonref/pointer
//
// A pointer is evaluated token by token: the fragment is stripped of
// leading slashes, percent-decoded, and split on "/"; each token is then
// unescaped (~1 becomes "/", then ~0 becomes "~") and looked up as a map
// key or parsed as a non-negative sequence index. An empty fragment
// returns the document itself.
//
//	v, err := pointer.Resolve(doc, "/definitions/address")
//	v, err := pointer.Resolve(doc, "/list/0")
//	v, err := pointer.Resolve(doc, "/a~1b")   // key "a/b"
//
// Lookup failures return a [referrors.PointerError] carrying the pointer
// and the offending token.
//
// [ResolveWith] accepts a dereference hook invoked on the current node
// before each descent step; the resolver package uses it to force lazy
// reference proxies and to substitute self-referential nodes during
// traversal. Plain [Resolve] walks the tree as-is.
package pointer
