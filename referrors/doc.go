// Package referrors provides structured error types for the jsonref library.
//
// Import path: github.com/erraggy/jsonref/referrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [MalformedReferenceError]: a $ref-bearing map failed validation (non-string $ref)
//   - [PointerError]: a JSON Pointer fragment could not be resolved against a document
//   - [LoaderError]: a document loader failed to fetch or parse a URI
//   - [ReferenceError]: the composite, user-facing resolution failure carrying the
//     reference object, URIs, document path, and the chain of intermediate references
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrMalformedReference]: Matches any [MalformedReferenceError]
//   - [ErrPointer]: Matches any [PointerError]
//   - [ErrLoader]: Matches any [LoaderError]
//   - [ErrReference]: Matches any [ReferenceError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := resolver.LoadString(data)
//	if errors.Is(err, referrors.ErrLoader) {
//	    // A remote document could not be fetched
//	}
//
// Extract error details with errors.As():
//
//	var refErr *referrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("failed to resolve %s (base %q) at %v\n",
//	        refErr.URI, refErr.BaseURI, refErr.Path)
//	    for _, hop := range refErr.Chain {
//	        fmt.Printf("  via %s\n", hop)
//	    }
//	}
//
// # Error Chaining
//
// [ReferenceError], [PointerError], and [LoaderError] support error chaining
// via the Cause field and Unwrap() method. A resolution failure deep inside a
// chain of references surfaces as a [ReferenceError] whose Cause leads to the
// innermost [PointerError] or [LoaderError]:
//
//	var refErr *referrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    if errors.Is(refErr, referrors.ErrPointer) {
//	        // The pointer fragment was unresolvable
//	    }
//	}
package referrors
