package resolver

import (
	"fmt"
	"io"

	"github.com/erraggy/jsonref/loader"
)

// ReprMode controls whether converting an unresolved [Ref] to a string
// forces its resolution. See [Ref.String].
type ReprMode int

const (
	// ReprAuto forces resolution for display unless the reference is part
	// of a cycle already being displayed, in which case the reference
	// notation is shown instead. This is the default.
	ReprAuto ReprMode = iota

	// ReprAlways forces resolution for display. Cycles already being
	// displayed still short-circuit to the reference notation, since
	// unrolling them would never terminate.
	ReprAlways

	// ReprNever shows the reference notation for unresolved references;
	// only already-resolved references display their subject.
	ReprNever
)

// String returns the name of the mode.
func (m ReprMode) String() string {
	switch m {
	case ReprAuto:
		return "auto"
	case ReprAlways:
		return "always"
	case ReprNever:
		return "never"
	default:
		return fmt.Sprintf("ReprMode(%d)", int(m))
	}
}

// Option is a function that configures reference replacement
type Option func(*config) error

// config holds configuration for a ReplaceRefs call
type config struct {
	baseURI    string
	baseURISet bool
	loader     loader.Func
	jsonschema bool
	loadOnRepr ReprMode
	proxies    bool
	lazyLoad   bool
	mergeProps bool
	logger     Logger

	// input sources for LoadWithOptions; exactly one may be set
	inputFile    string
	inputURL     string
	inputReader  io.Reader
	inputContent []byte
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		loadOnRepr: ReprAuto,
		proxies:    true,
		lazyLoad:   true,
		logger:     NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.loader == nil {
		l, err := loader.New()
		if err != nil {
			return nil, err
		}
		cfg.loader = l.LoadFunc()
	}
	return cfg, nil
}

// WithBaseURI sets the URI that relative reference URIs are resolved
// against. Default: "" (relative references resolve within the document
// being walked).
func WithBaseURI(uri string) Option {
	return func(cfg *config) error {
		cfg.baseURI = uri
		cfg.baseURISet = true
		return nil
	}
}

// WithLoader sets the function used to fetch documents referenced by URI.
// Any function matching [loader.Func] works, including a plain map lookup:
//
//	docs := map[string]any{"other.json": map[string]any{"x": 1.0}}
//	resolver.WithLoader(func(uri string) (any, error) {
//		doc, ok := docs[uri]
//		if !ok {
//			return nil, fmt.Errorf("unknown document %q", uri)
//		}
//		return doc, nil
//	})
//
// Default: a freshly constructed [loader.Loader], whose document cache
// lives for the duration of the call that created it.
func WithLoader(fn loader.Func) Option {
	return func(cfg *config) error {
		cfg.loader = fn
		return nil
	}
}

// WithJSONSchemaMode enables JSON Schema base-URI handling: a map with a
// string-valued "$id" (or "id") key changes the base URI for references
// contained within it, and becomes the resolution target for references
// naming that URI. This is a base-URI convenience only; no JSON Schema
// validation is performed.
// Default: false
func WithJSONSchemaMode(enabled bool) Option {
	return func(cfg *config) error {
		cfg.jsonschema = enabled
		return nil
	}
}

// WithLoadOnRepr sets whether converting an unresolved reference to a
// string forces its resolution.
// Default: ReprAuto
func WithLoadOnRepr(mode ReprMode) Option {
	return func(cfg *config) error {
		if mode < ReprAuto || mode > ReprNever {
			return fmt.Errorf("resolver: invalid ReprMode %d", int(mode))
		}
		cfg.loadOnRepr = mode
		return nil
	}
}

// WithProxies controls whether references are replaced with [Ref] proxies
// (true) or directly with the referent data (false). Disabling proxies
// forces every reference during the ReplaceRefs call and loses the
// ability to re-serialize the document with its original references.
// Default: true
func WithProxies(enabled bool) Option {
	return func(cfg *config) error {
		cfg.proxies = enabled
		return nil
	}
}

// WithLazyLoad controls when references are resolved. When true,
// resolution is deferred until a reference is first accessed; a failing
// reference only surfaces an error to code that actually touches it.
// When false, every reference is forced before ReplaceRefs returns and
// the first failure aborts the call.
// Default: true
func WithLazyLoad(enabled bool) Option {
	return func(cfg *config) error {
		cfg.lazyLoad = enabled
		return nil
	}
}

// WithMergeProps enables merging of extra keys on reference objects into
// the resolved document, when that document is a map. Extra keys win on
// collision. This is not part of the JSON Reference spec and may not
// behave the same as other libraries.
// Default: false
func WithMergeProps(enabled bool) Option {
	return func(cfg *config) error {
		cfg.mergeProps = enabled
		return nil
	}
}

// WithLogger sets a structured logger for diagnostic output during
// walking and resolution. See [Logger] for adapting log/slog and other
// logging libraries.
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
