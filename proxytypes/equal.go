package proxytypes

import "reflect"

// Equal reports whether a and b are deeply equal after forcing any proxies
// encountered on either side. Numeric kinds are normalized before
// comparison, so an int 5 equals a float64 5. Cyclic structures are
// handled: once a pair of containers is under comparison, re-reaching the
// same pair is treated as equal rather than recursing forever.
//
// A proxy whose forcing fails is never equal to anything.
func Equal(a, b any) bool {
	return equalValues(a, b, make(map[visitPair]bool))
}

// visitPair identifies a pair of containers currently being compared.
type visitPair struct {
	a, b uintptr
}

func equalValues(a, b any, seen map[visitPair]bool) bool {
	a, err := Resolve(a)
	if err != nil {
		return false
	}
	b, err = Resolve(b)
	if err != nil {
		return false
	}

	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		if len(av) == 0 {
			return true
		}
		pair := visitPair{reflect.ValueOf(av).Pointer(), reflect.ValueOf(bv).Pointer()}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for k, x := range av {
			y, present := bv[k]
			if !present || !equalValues(x, y, seen) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		if len(av) == 0 {
			return true
		}
		pair := visitPair{reflect.ValueOf(av).Pointer(), reflect.ValueOf(bv).Pointer()}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for i := range av {
			if !equalValues(av[i], bv[i], seen) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// toFloat normalizes any numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
