package referrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedReference indicates an invalid reference object.
	ErrMalformedReference = errors.New("malformed reference")

	// ErrPointer indicates a JSON Pointer lookup failure.
	ErrPointer = errors.New("unresolvable JSON pointer")

	// ErrLoader indicates a document loader failure.
	ErrLoader = errors.New("loader error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")
)

// MalformedReferenceError represents a reference object that failed
// validation, such as a map whose $ref value is not a string. It is
// returned at construction time, never deferred to resolution.
type MalformedReferenceError struct {
	// Reference is the offending reference object
	Reference map[string]any
	// Message describes the validation failure
	Message string
}

// Error returns a human-readable error message.
func (e *MalformedReferenceError) Error() string {
	msg := "malformed reference"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Reference != nil {
		msg += fmt.Sprintf(": %v", e.Reference)
	}
	return msg
}

// Unwrap returns nil as MalformedReferenceError has no underlying cause.
func (e *MalformedReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MalformedReferenceError) Is(target error) bool {
	return target == ErrMalformedReference
}

// PointerError represents a failure to resolve a JSON Pointer fragment
// against a document: a missing map key, a non-numeric or out-of-range
// sequence index, or indexing into a scalar.
type PointerError struct {
	// Pointer is the full pointer string that failed to resolve
	Pointer string
	// Token is the specific segment that failed (unescaped), if known
	Token string
	// Message describes the lookup failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PointerError) Error() string {
	msg := "unresolvable JSON pointer"
	if e.Pointer != "" {
		msg += ": " + e.Pointer
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" (at %q)", e.Token)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PointerError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PointerError) Is(target error) bool {
	return target == ErrPointer
}

// LoaderError represents a failure to fetch or parse the document at a URI.
// Transport errors (network, file system) and parse errors both surface as
// LoaderError with the original error as Cause.
type LoaderError struct {
	// URI is the URI that failed to load
	URI string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoaderError) Error() string {
	msg := "loader error"
	if e.URI != "" {
		msg += " for " + e.URI
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoaderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoaderError) Is(target error) bool {
	return target == ErrLoader
}

// ReferenceError represents a failure to resolve a reference. It is the
// composite, user-facing error kind: it wraps the underlying pointer or
// loader failure and carries the original reference object, the fully
// resolved target URI, the base URI in effect, the location of the
// reference within its document, and the chain of intermediate reference
// URIs traversed before the failure.
//
// For chained references (a ref pointing at another ref), the innermost
// failure propagates outward: URI, Message, and Cause describe the hop
// that actually failed, while Chain lists the URIs of the hops traversed
// to reach it, outermost first.
type ReferenceError struct {
	// Reference is the original reference object being resolved
	Reference map[string]any
	// URI is the fully resolved target URI of the failing reference
	URI string
	// BaseURI is the base URI in effect when resolution failed
	BaseURI string
	// Path is the location of the reference within its document, as a
	// sequence of map keys (string) and sequence indexes (int)
	Path []any
	// Chain is the ordered list of intermediate reference URIs traversed
	// before the failure, outermost first
	Chain []string
	// Message describes the resolution failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.URI != "" {
		msg += ": " + e.URI
	}
	if len(e.Chain) > 0 {
		msg += " (via " + strings.Join(e.Chain, " -> ") + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}
