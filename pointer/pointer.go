package pointer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/erraggy/jsonref/referrors"
)

// DerefFunc is invoked on the current node before each descent step of
// [ResolveWith]. Implementations may return the node unchanged, replace it
// with another value, or fail the walk by returning an error.
type DerefFunc func(node any) (any, error)

// Resolve evaluates a JSON Pointer fragment against document and returns
// the value it designates. An empty fragment designates the document
// itself. Failures return a [referrors.PointerError].
func Resolve(document any, fragment string) (any, error) {
	return ResolveWith(document, fragment, nil)
}

// ResolveWith evaluates fragment against document like [Resolve], calling
// deref on the current node before each descent step. A nil deref walks
// the tree as-is. Errors returned by deref abort the walk unchanged; they
// are not wrapped in a [referrors.PointerError].
func ResolveWith(document any, fragment string, deref DerefFunc) (any, error) {
	current := document
	for _, token := range tokens(fragment) {
		if deref != nil {
			var err error
			if current, err = deref(current); err != nil {
				return nil, err
			}
		}
		var err error
		if current, err = step(current, token, fragment); err != nil {
			return nil, err
		}
	}
	return current, nil
}

// tokens splits a fragment into its reference tokens: leading slashes are
// stripped, the remainder is percent-decoded as a whole, and the result is
// split on "/". An empty fragment yields no tokens; "/" yields the single
// empty token designating the "" key.
func tokens(fragment string) []string {
	if fragment == "" {
		return nil
	}
	return strings.Split(percentDecode(strings.TrimLeft(fragment, "/")), "/")
}

// percentDecode decodes %XX escapes, leaving the input unchanged when it
// is not valid percent-encoding.
func percentDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// step descends one reference token into current.
func step(current any, token, pointer string) (any, error) {
	token = Unescape(token)
	switch c := current.(type) {
	case map[string]any:
		v, ok := c[token]
		if !ok {
			return nil, &referrors.PointerError{
				Pointer: pointer,
				Token:   token,
				Message: "key not found",
			}
		}
		return v, nil
	case []any:
		idx, err := strconv.Atoi(token)
		if err != nil {
			return nil, &referrors.PointerError{
				Pointer: pointer,
				Token:   token,
				Message: "sequence index is not an integer",
				Cause:   err,
			}
		}
		if idx < 0 || idx >= len(c) {
			return nil, &referrors.PointerError{
				Pointer: pointer,
				Token:   token,
				Message: fmt.Sprintf("sequence index out of range [0, %d)", len(c)),
			}
		}
		return c[idx], nil
	default:
		return nil, &referrors.PointerError{
			Pointer: pointer,
			Token:   token,
			Message: fmt.Sprintf("cannot descend into %T", current),
		}
	}
}

// Unescape decodes the JSON Pointer escape sequences in a reference
// token, replacing ~1 with "/" and then ~0 with "~".
func Unescape(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
