package resolver

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/erraggy/jsonref/pointer"
	"github.com/erraggy/jsonref/proxytypes"
	"github.com/erraggy/jsonref/referrors"
)

// Ref is a lazy proxy to the data pointed to by a JSON reference object.
// It is created by [ReplaceRefs] (or [NewRef]) and behaves like its
// referent for every proxy-transparent operation in
// [github.com/erraggy/jsonref/proxytypes]: forcing the Ref resolves the
// reference on first access and caches the result.
//
// The Ref's own state remains reachable alongside the referent:
// [Ref.Reference] returns the original reference object, and marshaling a
// Ref to JSON or YAML emits that original object rather than the resolved
// data, so a resolved document round-trips to its referenced form.
type Ref struct {
	*proxytypes.LazyProxy

	reference map[string]any
	baseURI   string
	path      []any
	state     *walkState
}

// NewRef constructs a standalone Ref from a reference object, validating
// it: reference must contain a string-valued "$ref" key, otherwise a
// [referrors.MalformedReferenceError] is returned immediately.
//
// Most callers should use [ReplaceRefs], which builds Refs for every
// reference object in a document and shares resolution state between
// them. A Ref built here resolves against its own private state.
func NewRef(reference map[string]any, opts ...Option) (*Ref, error) {
	if _, ok := reference["$ref"].(string); !ok {
		return nil, &referrors.MalformedReferenceError{
			Reference: reference,
			Message:   "$ref must be a string",
		}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	st := &walkState{cfg: cfg, store: make(map[string]any)}
	return newRef(reference, cfg.baseURI, nil, st), nil
}

// newRef builds a Ref sharing the walk's state. The caller has already
// established that reference["$ref"] is a string.
func newRef(reference map[string]any, baseURI string, path []any, st *walkState) *Ref {
	r := &Ref{
		reference: reference,
		baseURI:   baseURI,
		path:      path,
		state:     st,
	}
	r.LazyProxy = proxytypes.NewLazy(r.force)
	return r
}

// Reference returns the original reference object this Ref was created
// from, including any extra keys alongside "$ref".
func (r *Ref) Reference() map[string]any {
	return r.reference
}

// BaseURI returns the base URI the reference resolves against.
func (r *Ref) BaseURI() string {
	return r.baseURI
}

// FullURI returns the reference URI joined against the base URI.
func (r *Ref) FullURI() string {
	ref, _ := r.reference["$ref"].(string)
	return joinURI(r.baseURI, ref)
}

// Path returns the location of the reference within the document it was
// found in, as a sequence of map keys (string) and sequence indexes (int).
func (r *Ref) Path() []any {
	return slices.Clone(r.path)
}

// force resolves the reference: locate (or fetch and walk) the base
// document, resolve the pointer fragment against it, collapse any chained
// proxies, and apply property merging when configured. It is invoked at
// most once per successful resolution by the embedded LazyProxy.
func (r *Ref) force() (any, error) {
	fullURI := r.FullURI()
	uri, fragment := splitFragment(fullURI)
	log := r.state.cfg.logger

	baseDoc, ok := r.state.storeGet(uri)
	if ok {
		log.Debug("document store hit", "uri", uri)
	} else {
		doc, err := r.state.cfg.loader(uri)
		if err != nil {
			log.Error("document load failed", "uri", uri, "error", err)
			return nil, r.newError("failed to load document", err)
		}
		log.Debug("document loaded", "uri", uri)
		baseDoc = r.state.replaceRefs(doc, uri, r.path, false)
	}

	result, err := pointer.ResolveWith(baseDoc, fragment, r.deref)
	if err != nil {
		return nil, r.resolutionError(err)
	}
	if sameRef(result, r) {
		return nil, r.newError("reference refers directly to itself", nil)
	}
	if result, err = proxytypes.Resolve(result); err != nil {
		return nil, r.resolutionError(err)
	}
	if r.state.cfg.mergeProps {
		result = r.mergeExtras(result)
	}
	log.Debug("reference resolved", "uri", fullURI)
	return result, nil
}

// deref is the pointer-walk hook: a step that reaches this Ref itself
// means the pointer addresses the inside of the reference object, so the
// reference object is substituted; any other proxy encountered on the
// way is forced so descent can continue through it.
func (r *Ref) deref(node any) (any, error) {
	if sameRef(node, r) {
		return r.reference, nil
	}
	if _, ok := node.(proxytypes.Proxy); ok {
		return proxytypes.Resolve(node)
	}
	return node, nil
}

// mergeExtras layers the reference object's extra keys on top of the
// resolved target when the target is a map and extra keys exist. The
// target map is left untouched; a fresh map is returned so targets shared
// with other references keep their identity. Non-map targets pass through
// unchanged.
func (r *Ref) mergeExtras(result any) any {
	target, ok := result.(map[string]any)
	if !ok {
		return result
	}
	extras := make(map[string]any)
	for k, v := range r.reference {
		if k == "$ref" {
			continue
		}
		if r.state.cfg.jsonschema && (k == "$id" || k == "id") {
			continue
		}
		extras[k] = v
	}
	if len(extras) == 0 {
		return result
	}
	r.state.cfg.logger.Debug("merging extra properties", "uri", r.FullURI(), "count", len(extras))
	merged := make(map[string]any, len(target)+len(extras))
	for k, v := range target {
		merged[k] = v
	}
	for k, v := range extras {
		merged[k] = v
	}
	return merged
}

// newError builds the composite resolution error for this reference.
func (r *Ref) newError(msg string, cause error) *referrors.ReferenceError {
	return &referrors.ReferenceError{
		Reference: r.reference,
		URI:       r.FullURI(),
		BaseURI:   r.baseURI,
		Path:      slices.Clone(r.path),
		Message:   msg,
		Cause:     cause,
	}
}

// resolutionError wraps a failure from pointer resolution or chained
// forcing. A ReferenceError bubbling up from an inner reference keeps its
// own diagnostic fields; this hop only records itself on the chain, so
// the innermost failure stays visible with the route taken to reach it,
// outermost first.
func (r *Ref) resolutionError(err error) error {
	if inner, ok := err.(*referrors.ReferenceError); ok { //nolint:errorlint // deliberate: only an unwrapped inner ref error extends the chain
		inner.Chain = append([]string{r.FullURI()}, inner.Chain...)
		return inner
	}
	return r.newError("", err)
}

// String renders the Ref following the configured ReprMode: the resolved
// subject when forcing is allowed (or already done), or the reference
// notation Ref({"$ref": ...}) when it is not — including whenever this
// reference is already being displayed further up the rendering, which
// keeps cyclic structures printable.
func (r *Ref) String() string {
	full := r.FullURI()
	if r.state.isDisplaying(full) {
		return r.notation()
	}
	if !r.Resolved() && r.state.cfg.loadOnRepr == ReprNever {
		return r.notation()
	}
	subject, err := r.Subject()
	if err != nil {
		return r.notation()
	}
	r.state.pushDisplaying(full)
	defer r.state.popDisplaying()
	return fmt.Sprint(subject)
}

// notation renders the original reference object without forcing
// resolution.
func (r *Ref) notation() string {
	data, err := json.Marshal(r.reference)
	if err != nil {
		return fmt.Sprintf("Ref(%v)", r.reference)
	}
	return fmt.Sprintf("Ref(%s)", data)
}

// MarshalJSON emits the original reference object, not the resolved
// data, so serializing a resolved document round-trips to its referenced
// form.
func (r *Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.reference)
}

// MarshalYAML emits the original reference object, mirroring
// MarshalJSON for YAML output.
func (r *Ref) MarshalYAML() (any, error) {
	return r.reference, nil
}

// sameRef reports whether v is exactly this Ref.
func sameRef(v any, r *Ref) bool {
	other, ok := v.(*Ref)
	return ok && other == r
}

// Compile-time interface checks.
var (
	_ proxytypes.Proxy = (*Ref)(nil)
	_ fmt.Stringer     = (*Ref)(nil)
	_ json.Marshaler   = (*Ref)(nil)
)

// isDisplaying reports whether uri is on the current display stack.
func (st *walkState) isDisplaying(uri string) bool {
	return slices.Contains(st.displaying, uri)
}

func (st *walkState) pushDisplaying(uri string) {
	st.displaying = append(st.displaying, uri)
}

func (st *walkState) popDisplaying() {
	st.displaying = st.displaying[:len(st.displaying)-1]
}
