package resolver

// ReplaceRefs returns a copy of value with every JSON reference object
// (a map containing a string-valued "$ref" key) replaced by a [Ref]
// proxy to the data it points to. Maps and sequences are rebuilt; scalars
// pass through unchanged; non-reference structure is preserved, including
// insertion identity: two references to the same target share one
// resolved object.
//
// By default references resolve lazily, on first access, and the returned
// error is always nil. With [WithLazyLoad](false), every reference is
// forced before returning and the first failure aborts the call. With
// [WithProxies](false), references are forced and the referent data is
// spliced directly into the result, with no proxies retained.
func ReplaceRefs(value any, opts ...Option) (any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return replaceWithConfig(value, cfg)
}

// replaceWithConfig runs the replacement with an already-built config, so
// the Load* entry points can share one configured loader between fetching
// the root document and resolving the references inside it.
func replaceWithConfig(value any, cfg *config) (any, error) {
	st := &walkState{
		cfg:   cfg,
		store: make(map[string]any),
	}
	cfg.logger.Debug("replacing references", "base_uri", cfg.baseURI,
		"lazy_load", cfg.lazyLoad, "proxies", cfg.proxies)
	result := st.replaceRefs(value, cfg.baseURI, nil, false)
	switch {
	case !cfg.proxies:
		expanded, err := expandRefs(result)
		if err != nil {
			return nil, err
		}
		result = expanded
	case !cfg.lazyLoad:
		if err := forceRefs(result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// walkState is the context shared by one ReplaceRefs call and every Ref
// it creates: the configuration, the store of already-walked documents,
// and the stack of references currently being displayed (see Ref.String).
// Refs created while walking a fetched document share the state of the
// call that triggered the fetch, so the whole resolution graph sees one
// store.
type walkState struct {
	cfg        *config
	store      map[string]any
	displaying []string
}

// storeGet returns the already-walked document registered under the
// fragment-free URI, if any.
func (st *walkState) storeGet(uri string) (any, bool) {
	doc, ok := st.store[normalizeURI(uri)]
	return doc, ok
}

// storePut registers a walked document under its fragment-free URI.
func (st *walkState) storePut(uri string, doc any) {
	st.store[normalizeURI(uri)] = doc
}

// replaceRefs walks one node. Children are rebuilt first, then the node
// itself is replaced by a Ref if it is a reference object. Walked
// documents are registered in the store under their base URI so that
// references naming that URI resolve against the walked tree rather than
// re-walking (or re-fetching) it; only the entry point of a walk
// registers, not every nested map, except that in jsonschema mode an
// "$id" re-anchors its subtree under the joined URI.
func (st *walkState) replaceRefs(obj any, baseURI string, path []any, recursing bool) any {
	baseURI, frag := splitFragment(baseURI)
	storeURI := ""
	store := false
	if frag == "" && !recursing {
		storeURI, store = baseURI, true
	}
	if st.cfg.jsonschema {
		if m, ok := obj.(map[string]any); ok {
			if id, ok := schemaID(m); ok {
				baseURI = joinURI(baseURI, id)
				storeURI, store = baseURI, true
			}
		}
	}

	switch node := obj.(type) {
	case map[string]any:
		walked := make(map[string]any, len(node))
		for k, v := range node {
			walked[k] = st.replaceRefs(v, baseURI, appendPath(path, k), true)
		}
		obj = walked
		if ref, ok := walked["$ref"].(string); ok {
			st.cfg.logger.Debug("reference found", "ref", ref, "base_uri", baseURI)
			obj = newRef(walked, baseURI, path, st)
		}
	case []any:
		walked := make([]any, len(node))
		for i, v := range node {
			walked[i] = st.replaceRefs(v, baseURI, appendPath(path, i), true)
		}
		obj = walked
	}

	if store {
		st.storePut(storeURI, obj)
	}
	return obj
}

// schemaID extracts the "$id" (or legacy "id") keyword from a schema map.
// A string-valued "$id" wins over "id"; non-string values are ignored.
func schemaID(m map[string]any) (string, bool) {
	if id, ok := m["$id"].(string); ok && id != "" {
		return id, true
	}
	if id, ok := m["id"].(string); ok && id != "" {
		return id, true
	}
	return "", false
}

// appendPath returns path extended by elem, always in fresh backing so
// sibling walks cannot alias one another.
func appendPath(path []any, elem any) []any {
	next := make([]any, len(path), len(path)+1)
	copy(next, path)
	return append(next, elem)
}
