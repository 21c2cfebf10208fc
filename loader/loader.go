package loader

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/erraggy/jsonref"
	"github.com/erraggy/jsonref/referrors"
)

// Func fetches and decodes the document identified by uri. The resolver
// package accepts any Func as its document source; [Loader.LoadFunc]
// adapts a configured Loader.
type Func func(uri string) (any, error)

// Loader fetches and decodes documents by URI. It is safe for concurrent
// use: the decoded-document cache is guarded by a mutex and concurrent
// loads of the same URI share a single fetch.
type Loader struct {
	httpClient         *http.Client
	userAgent          string
	maxDocumentSize    int64
	cacheDisabled      bool
	insecureSkipVerify bool
	logger             *slog.Logger

	mu    sync.RWMutex
	cache map[string]any
	group singleflight.Group
}

// New creates a Loader configured by the given options.
func New(opts ...Option) (*Loader, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Loader{
		httpClient:         cfg.httpClient,
		userAgent:          cfg.userAgent,
		maxDocumentSize:    cfg.maxDocumentSize,
		cacheDisabled:      cfg.cacheDisabled,
		insecureSkipVerify: cfg.insecureSkipVerify,
		logger:             cfg.logger,
		cache:              make(map[string]any),
	}, nil
}

// Load fetches and decodes the document at uri, returning the cached
// decoded document when one exists. Failures return a
// [referrors.LoaderError]; errors are never cached, so a failed load is
// retried on the next call.
func (l *Loader) Load(uri string) (any, error) {
	key := cacheKey(uri)
	if !l.cacheDisabled {
		l.mu.RLock()
		doc, ok := l.cache[key]
		l.mu.RUnlock()
		if ok {
			l.log().Debug("document cache hit", "uri", uri)
			return doc, nil
		}
	}

	doc, err, shared := l.group.Do(key, func() (any, error) {
		doc, err := l.fetch(uri)
		if err != nil {
			return nil, err
		}
		if !l.cacheDisabled {
			l.mu.Lock()
			l.cache[key] = doc
			l.mu.Unlock()
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.log().Debug("document load coalesced", "uri", uri)
	}
	return doc, nil
}

// LoadFunc adapts the Loader to the Func type expected by the resolver.
func (l *Loader) LoadFunc() Func {
	return l.Load
}

// Store inserts a pre-decoded document into the cache under uri,
// bypassing any fetch. Subsequent loads of the same URI return doc.
// It is a no-op when caching is disabled.
func (l *Loader) Store(uri string, doc any) {
	if l.cacheDisabled {
		return
	}
	l.mu.Lock()
	l.cache[cacheKey(uri)] = doc
	l.mu.Unlock()
}

// ClearCache discards all cached documents.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string]any)
	l.mu.Unlock()
}

// log returns the configured logger, or a disabled logger if none is set.
func (l *Loader) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.DiscardHandler)

// fetch retrieves and decodes the document at uri without consulting the
// cache.
func (l *Loader) fetch(uri string) (any, error) {
	var (
		data        []byte
		contentType string
		err         error
	)
	switch {
	case isHTTPURI(uri):
		data, contentType, err = l.fetchHTTP(uri)
	case isFileURI(uri):
		var path string
		if path, err = fileURIToPath(uri); err == nil {
			data, err = l.readFile(uri, path)
		}
	default:
		data, err = l.readFile(uri, uri)
	}
	if err != nil {
		return nil, asLoaderError(uri, "failed to load document", err)
	}

	doc, err := decode(data, detectFormat(uri, contentType, data))
	if err != nil {
		return nil, asLoaderError(uri, "failed to decode document", err)
	}
	l.log().Debug("document loaded", "uri", uri, "bytes", len(data))
	return doc, nil
}

// asLoaderError wraps err in a LoaderError unless it already is one.
func asLoaderError(uri, msg string, err error) error {
	if _, ok := err.(*referrors.LoaderError); ok { //nolint:errorlint // only wrap foreign errors
		return err
	}
	return &referrors.LoaderError{URI: uri, Message: msg, Cause: err}
}

// defaultUserAgent returns the User-Agent for outbound requests when none
// is configured.
func defaultUserAgent() string {
	return jsonref.UserAgent()
}
