package proxytypes

// Proxy is the interface implemented by all proxy flavors. Subject returns
// the current underlying value, performing any deferred computation. A
// Subject error means the value could not be produced; whether a later call
// retries depends on the flavor.
type Proxy interface {
	Subject() (any, error)
}

// ValueProxy wraps a value that is already available. Subject never fails.
type ValueProxy struct {
	value any
}

// NewValue returns a ValueProxy wrapping v.
func NewValue(v any) *ValueProxy {
	return &ValueProxy{value: v}
}

// Subject implements Proxy.
func (p *ValueProxy) Subject() (any, error) {
	return p.value, nil
}

// SetSubject replaces the wrapped value.
func (p *ValueProxy) SetSubject(v any) {
	p.value = v
}

// CallbackProxy computes its subject by invoking a callback on every
// access. Nothing is cached: repeated accesses observe fresh values, and a
// failing callback fails every access.
type CallbackProxy struct {
	callback func() (any, error)
}

// NewCallback returns a CallbackProxy around fn.
func NewCallback(fn func() (any, error)) *CallbackProxy {
	return &CallbackProxy{callback: fn}
}

// Subject implements Proxy.
func (p *CallbackProxy) Subject() (any, error) {
	return p.callback()
}

// LazyProxy computes its subject by invoking a callback on first access and
// caches the result for all later accesses. A callback error is returned to
// the caller and not cached, so the next access retries the computation.
type LazyProxy struct {
	callback func() (any, error)
	subject  any
	resolved bool
}

// NewLazy returns a LazyProxy around fn.
func NewLazy(fn func() (any, error)) *LazyProxy {
	return &LazyProxy{callback: fn}
}

// Subject implements Proxy.
func (p *LazyProxy) Subject() (any, error) {
	if !p.resolved {
		v, err := p.callback()
		if err != nil {
			return nil, err
		}
		p.subject = v
		p.resolved = true
	}
	return p.subject, nil
}

// Resolved reports whether the subject has been computed and cached.
func (p *LazyProxy) Resolved() bool {
	return p.resolved
}

// SetSubject replaces the cached subject, marking the proxy resolved. The
// callback will not be invoked afterward.
func (p *LazyProxy) SetSubject(v any) {
	p.subject = v
	p.resolved = true
}

// Compile-time interface checks.
var (
	_ Proxy = (*ValueProxy)(nil)
	_ Proxy = (*CallbackProxy)(nil)
	_ Proxy = (*LazyProxy)(nil)
)
