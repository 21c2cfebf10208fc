package resolver

import "reflect"

// WalkRefs visits every [Ref] reachable from value, descending through
// maps, sequences, and resolved reference subjects. Cycles are detected
// by object identity and visited once. A non-nil error from visit aborts
// the walk and is returned unchanged.
//
// Visiting follows resolution: after visit returns, the reference is
// forced so that references inside its referent are reached too. A
// reference that fails to force is still visited (visit may observe the
// failure itself via [Ref.Subject] and decide to continue); only the
// failed referent is skipped.
func WalkRefs(value any, visit func(*Ref) error) error {
	_, err := walkRefs(value, visit, false, make(map[uintptr]any))
	return err
}

// forceRefs resolves every reference reachable from value, aborting on
// the first failure. Proxies stay in place. This implements eager
// loading: by the time it runs, the whole document has been walked and
// every Ref exists, so mutually recursive references resolve instead of
// chasing their own construction.
func forceRefs(value any) error {
	return WalkRefs(value, func(r *Ref) error {
		_, err := r.Subject()
		return err
	})
}

// expandRefs resolves every reference reachable from value and splices
// the referent data in place of the proxies, returning the new top-level
// value. Identity is preserved: a referent shared by several references
// is spliced as the same object, and cyclic references become
// self-referential structure.
func expandRefs(value any) (any, error) {
	return walkRefs(value, func(r *Ref) error {
		_, err := r.Subject()
		return err
	}, true, make(map[uintptr]any))
}

// walkRefs is the engine behind WalkRefs, forceRefs, and expandRefs.
// processed maps object identities to their walked (possibly replaced)
// values so shared structure is visited once and cycles terminate.
func walkRefs(obj any, visit func(*Ref) error, replace bool, processed map[uintptr]any) (any, error) {
	origID, hasID := identity(obj)
	if hasID {
		if seen, done := processed[origID]; done {
			return seen, nil
		}
	}

	if r, ok := obj.(*Ref); ok {
		if err := visit(r); err != nil {
			return nil, err
		}
		subject, err := r.Subject()
		if err != nil {
			// visit chose to continue past the failure; there is no
			// referent to descend into
			processed[origID] = obj
			return obj, nil
		}
		if replace {
			obj = subject
		} else {
			processed[origID] = obj
			if _, err := walkRefs(subject, visit, replace, processed); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}

	if hasID {
		processed[origID] = obj
	}
	if id, ok := identity(obj); ok && (!hasID || id != origID) {
		if seen, done := processed[id]; done {
			return seen, nil
		}
		processed[id] = obj
	}

	switch c := obj.(type) {
	case map[string]any:
		for k, v := range c {
			walked, err := walkRefs(v, visit, replace, processed)
			if err != nil {
				return nil, err
			}
			if replace {
				c[k] = walked
			}
		}
	case []any:
		for i, v := range c {
			walked, err := walkRefs(v, visit, replace, processed)
			if err != nil {
				return nil, err
			}
			if replace {
				c[i] = walked
			}
		}
	}
	return obj, nil
}

// identity returns a comparable identity for objects that can appear
// more than once in a resolved graph. Empty containers have no children
// to revisit and are excluded, which also sidesteps the zero-length
// allocations the runtime may share.
func identity(v any) (uintptr, bool) {
	switch c := v.(type) {
	case *Ref:
		return reflect.ValueOf(c).Pointer(), true
	case map[string]any:
		if len(c) == 0 {
			return 0, false
		}
		return reflect.ValueOf(c).Pointer(), true
	case []any:
		if len(c) == 0 {
			return 0, false
		}
		return reflect.ValueOf(c).Pointer(), true
	default:
		return 0, false
	}
}
