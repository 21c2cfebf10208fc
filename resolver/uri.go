package resolver

import (
	"net/url"
	"path"
	"strings"
)

// joinURI resolves ref against base following RFC 3986 reference
// resolution. An empty base returns ref unchanged and an empty ref
// returns base unchanged. A ref carrying its own scheme stands alone,
// which covers absolute URLs and opaque URIs such as urn: references.
//
// Opaque bases (urn:name) are handled explicitly: net/url's
// ResolveReference only merges hierarchical paths, but a fragment-only
// ref against an opaque base must keep the base and swap the fragment,
// so urn:lib + #/defs yields urn:lib#/defs.
func joinURI(base, ref string) string {
	if base == "" {
		return ref
	}
	if ref == "" {
		return base
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.Scheme != "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	if baseURL.Opaque != "" {
		if refURL.Host == "" && refURL.Path == "" && refURL.RawQuery == "" {
			joined := *baseURL
			joined.Fragment = refURL.Fragment
			joined.RawFragment = refURL.RawFragment
			return joined.String()
		}
		return ref
	}
	if baseURL.Scheme == "" && baseURL.Host == "" && !strings.HasPrefix(baseURL.Path, "/") {
		return joinRelative(baseURL, refURL)
	}
	return baseURL.ResolveReference(refURL).String()
}

// joinRelative merges ref against a relative base path.
// net/url's ResolveReference assumes a rooted base, so b.json + c.json
// would come out as /c.json; merging by hand keeps the result relative
// (b.json + c.json yields c.json, dir/b.json + c.json yields dir/c.json).
func joinRelative(base, ref *url.URL) string {
	if ref.Host != "" || strings.HasPrefix(ref.Path, "/") {
		return ref.String()
	}
	var joined url.URL
	if ref.Path == "" {
		joined = *base
		if ref.RawQuery != "" {
			joined.RawQuery = ref.RawQuery
		}
	} else {
		joined = *ref
		if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
			merged := base.Path[:i+1] + ref.Path
			cleaned := path.Clean(merged)
			if strings.HasSuffix(merged, "/") && !strings.HasSuffix(cleaned, "/") {
				cleaned += "/"
			}
			joined.Path = cleaned
		}
	}
	joined.Fragment = ref.Fragment
	joined.RawFragment = ref.RawFragment
	return joined.String()
}

// splitFragment splits a URI at its first '#' into a fragment-free URI
// and the raw fragment. URIs without a fragment return an empty fragment.
func splitFragment(uri string) (string, string) {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i], uri[i+1:]
	}
	return uri, ""
}

// normalizeURI produces the canonical form of a URI used as a document
// store key, so that spelling variants of the same URI share one entry.
// Unparseable URIs are used verbatim.
func normalizeURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return u.String()
}
