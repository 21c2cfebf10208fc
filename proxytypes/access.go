package proxytypes

import "fmt"

// Resolve forces v through any chain of proxies and returns the first
// non-proxy value. Plain values are returned unchanged.
func Resolve(v any) (any, error) {
	for {
		p, ok := v.(Proxy)
		if !ok {
			return v, nil
		}
		s, err := p.Subject()
		if err != nil {
			return nil, err
		}
		v = s
	}
}

// Key returns the value stored under key in v, forcing v if it is a proxy.
// The returned member is not forced; it may itself be a proxy.
func Key(v any, key string) (any, error) {
	rv, err := Resolve(v)
	if err != nil {
		return nil, err
	}
	m, ok := rv.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("proxytypes: cannot index %T with key %q", rv, key)
	}
	val, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("proxytypes: key %q not found", key)
	}
	return val, nil
}

// Index returns the i-th element of v, forcing v if it is a proxy.
// The returned element is not forced; it may itself be a proxy.
func Index(v any, i int) (any, error) {
	rv, err := Resolve(v)
	if err != nil {
		return nil, err
	}
	s, ok := rv.([]any)
	if !ok {
		return nil, fmt.Errorf("proxytypes: cannot index %T with position %d", rv, i)
	}
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("proxytypes: index %d out of range (len %d)", i, len(s))
	}
	return s[i], nil
}

// Len returns the length of v after forcing: map entry count, sequence
// length, or string length.
func Len(v any) (int, error) {
	rv, err := Resolve(v)
	if err != nil {
		return 0, err
	}
	switch c := rv.(type) {
	case map[string]any:
		return len(c), nil
	case []any:
		return len(c), nil
	case string:
		return len(c), nil
	default:
		return 0, fmt.Errorf("proxytypes: %T has no length", rv)
	}
}

// SetKey stores val under key in v, forcing v if it is a proxy. The
// mutation is visible through every holder of the resolved map.
func SetKey(v any, key string, val any) error {
	rv, err := Resolve(v)
	if err != nil {
		return err
	}
	m, ok := rv.(map[string]any)
	if !ok {
		return fmt.Errorf("proxytypes: cannot set key %q on %T", key, rv)
	}
	m[key] = val
	return nil
}

// SetIndex stores val at position i in v, forcing v if it is a proxy.
func SetIndex(v any, i int, val any) error {
	rv, err := Resolve(v)
	if err != nil {
		return err
	}
	s, ok := rv.([]any)
	if !ok {
		return fmt.Errorf("proxytypes: cannot set position %d on %T", i, rv)
	}
	if i < 0 || i >= len(s) {
		return fmt.Errorf("proxytypes: index %d out of range (len %d)", i, len(s))
	}
	s[i] = val
	return nil
}

// DeleteKey removes key from v, forcing v if it is a proxy. Deleting an
// absent key is not an error.
func DeleteKey(v any, key string) error {
	rv, err := Resolve(v)
	if err != nil {
		return err
	}
	m, ok := rv.(map[string]any)
	if !ok {
		return fmt.Errorf("proxytypes: cannot delete key %q from %T", key, rv)
	}
	delete(m, key)
	return nil
}

// Map forces v and returns it as a map. Fails if the resolved value is not
// a map.
func Map(v any) (map[string]any, error) {
	rv, err := Resolve(v)
	if err != nil {
		return nil, err
	}
	m, ok := rv.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("proxytypes: %T is not a map", rv)
	}
	return m, nil
}

// Array forces v and returns it as a sequence. Fails if the resolved value
// is not a sequence.
func Array(v any) ([]any, error) {
	rv, err := Resolve(v)
	if err != nil {
		return nil, err
	}
	s, ok := rv.([]any)
	if !ok {
		return nil, fmt.Errorf("proxytypes: %T is not a sequence", rv)
	}
	return s, nil
}

// Bool forces v and returns it as a bool.
func Bool(v any) (bool, error) {
	rv, err := Resolve(v)
	if err != nil {
		return false, err
	}
	b, ok := rv.(bool)
	if !ok {
		return false, fmt.Errorf("proxytypes: %T is not a bool", rv)
	}
	return b, nil
}

// Int64 forces v and returns it as an int64. Numeric kinds are converted;
// float values are truncated toward zero.
func Int64(v any) (int64, error) {
	rv, err := Resolve(v)
	if err != nil {
		return 0, err
	}
	switch n := rv.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("proxytypes: %T is not a number", rv)
	}
}

// Float64 forces v and returns it as a float64. Numeric kinds are
// converted.
func Float64(v any) (float64, error) {
	rv, err := Resolve(v)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(rv)
	if !ok {
		return 0, fmt.Errorf("proxytypes: %T is not a number", rv)
	}
	return f, nil
}

// String forces v and returns it as a string. Fails if the resolved value
// is not a string; use fmt for display formatting of arbitrary values.
func String(v any) (string, error) {
	rv, err := Resolve(v)
	if err != nil {
		return "", err
	}
	s, ok := rv.(string)
	if !ok {
		return "", fmt.Errorf("proxytypes: %T is not a string", rv)
	}
	return s, nil
}
